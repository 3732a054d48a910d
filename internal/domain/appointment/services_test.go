package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func catalog() []models.Service {
	return []models.Service{
		{ID: 1, Name: "Corte", DurationMin: 30, BufferMin: 5, Price: decimal.RequireFromString("40.00"), Active: true},
		{ID: 2, Name: "Barba", DurationMin: 20, BufferMin: 0, Price: decimal.RequireFromString("25.50"), Active: true},
		{ID: 3, Name: "Pigmentação", DurationMin: 60, Price: decimal.RequireFromString("90"), Active: false},
	}
}

func TestNewServiceSelection_Aggregates(t *testing.T) {
	sel, err := NewServiceSelection([]uint{2, 1}, catalog())
	require.NoError(t, err)

	assert.Equal(t, []string{"Barba", "Corte"}, sel.Names())
	assert.Equal(t, 50*time.Minute, sel.TotalDuration())
	assert.True(t, decimal.RequireFromString("65.50").Equal(sel.TotalPrice()))

	rows := sel.AppointmentServices()
	require.Len(t, rows, 2)
	assert.Equal(t, uint(2), rows[0].ServiceID)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 30, rows[1].DurationMin)
}

func TestServiceSelection_BufferIsMaxNotSum(t *testing.T) {
	sel, err := NewServiceSelection([]uint{1, 2}, catalog())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, sel.TotalBuffer(0))
	assert.Equal(t, 10*time.Minute, sel.TotalBuffer(10*time.Minute))
	assert.Equal(t, 5*time.Minute, sel.TotalBuffer(3*time.Minute))
	assert.Equal(t, 60*time.Minute, sel.NeededSpan(10*time.Minute))
}

func TestNewServiceSelection_Errors(t *testing.T) {
	tests := []struct {
		name  string
		ids   []uint
		found []models.Service
		code  string
	}{
		{"empty request", nil, catalog(), httperr.CodeNoServices},
		{"nothing in tenant", []uint{1}, nil, httperr.CodeNoServices},
		{"partially missing", []uint{1, 9}, catalog(), httperr.CodeServiceNotFound},
		{"inactive", []uint{1, 3}, catalog(), httperr.CodeServiceInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServiceSelection(tt.ids, tt.found)
			assert.Equal(t, tt.code, httperr.CodeOf(err))
		})
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, UniqueIDs([]uint{3, 1, 3, 2, 1}))
}
