package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarbershopFinder interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
}

// TenantFromSlug resolves the :slug path parameter of public routes to an
// active barbershop.
func TenantFromSlug(finder BarbershopFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := finder.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httperr.Respond(c, logger, err)
			c.Abort()
			return
		}

		c.Set(ContextBarbershopID, shop.ID)
		c.Next()
	}
}
