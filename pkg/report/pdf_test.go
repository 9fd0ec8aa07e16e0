package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	snap := Snapshot{
		Kind:        KindZ,
		GeneratedAt: time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC),
		TotalOrders: 42,
		TotalSales:  decimal.RequireFromString("512.75"),
		Hourly: []HourlySales{
			{Hour: 9, Orders: 10, Sales: decimal.RequireFromString("120.00")},
			{Hour: 14, Orders: 32, Sales: decimal.RequireFromString("392.75")},
		},
	}

	pdf, err := Render("Boba POS", snap)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderEmptyShift(t *testing.T) {
	snap := Snapshot{
		Kind:        KindX,
		GeneratedAt: time.Now(),
		TotalSales:  decimal.Zero,
	}

	pdf, err := Render("Boba POS", snap)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
