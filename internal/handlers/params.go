package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

var errInvalidInput = httperr.ErrValidation(httperr.CodeInvalidInput)

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidInput
	}
	return uint(id), nil
}

// parseIDList reads "1,2,3". Blank items are skipped; order is kept.
func parseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// barberParam reads barber_id from the query, or falls back to the
// authenticated caller when the caller is the barber.
func barberParam(c *gin.Context) (uint, error) {
	if raw := c.Query("barber_id"); raw != "" {
		return parseID(raw)
	}
	if id := middleware.UserID(c); id != nil {
		return *id, nil
	}
	return 0, errInvalidInput
}

func pathID(c *gin.Context, name string) (uint, error) {
	return parseID(c.Param(name))
}
