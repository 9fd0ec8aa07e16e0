package service

import (
	"testing"
	"time"

	"go-boba-pos/internal/model"
	"go-boba-pos/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompletedOrder(t *testing.T, db *gorm.DB, number, total string, at time.Time) {
	t.Helper()
	order := &model.Order{
		OrderNumber: number,
		OrderDate:   at,
		TotalAmount: dec(total),
		Subtotal:    dec(total),
		Tax:         dec("0"),
		CashierName: "Dana",
		Status:      model.OrderStatusCompleted,
	}
	require.NoError(t, db.Create(order).Error)
}

func TestZReportClosesShiftExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	seedCompletedOrder(t, db, "ORD-1", "10.00", now)
	seedCompletedOrder(t, db, "ORD-2", "15.00", now.Add(time.Hour))

	snap, err := svc.CloseShift("mgr-1")
	require.NoError(t, err)
	assert.Equal(t, report.KindZ, snap.Kind)
	assert.Equal(t, int64(2), snap.TotalOrders)
	assert.True(t, snap.TotalSales.Equal(dec("25.00")), "total: %s", snap.TotalSales)

	// Expected hour taken from the stored row so the assertion is
	// independent of how the driver round-trips timezones.
	var stored model.Order
	require.NoError(t, db.First(&stored, "order_number = ?", "ORD-1").Error)
	wantHour := stored.OrderDate.Hour()

	require.Len(t, snap.Hourly, 2)
	assert.Equal(t, wantHour, snap.Hourly[0].Hour)
	assert.Equal(t, int64(1), snap.Hourly[0].Orders)
	assert.True(t, snap.Hourly[0].Sales.Equal(dec("10.00")))
	assert.Equal(t, (wantHour+1)%24, snap.Hourly[1].Hour)

	// All matched rows are now reported
	var unreported int64
	require.NoError(t, db.Model(&model.Order{}).
		Where("reported = ?", false).Count(&unreported).Error)
	assert.Zero(t, unreported)

	// A second close before new sales reports nothing
	again, err := svc.CloseShift("mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.TotalOrders)
	assert.True(t, again.TotalSales.Equal(dec("0")))
	assert.Empty(t, again.Hourly)
}

func TestXReportDoesNotMutateReported(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	seedCompletedOrder(t, db, "ORD-1", "12.50", time.Now())

	snap, err := svc.RunXReport()
	require.NoError(t, err)
	assert.Equal(t, report.KindX, snap.Kind)
	assert.Equal(t, int64(1), snap.TotalOrders)
	assert.True(t, snap.TotalSales.Equal(dec("12.50")))

	// X-report is read-only: the order stays eligible for the next Z
	var unreported int64
	require.NoError(t, db.Model(&model.Order{}).
		Where("reported = ?", false).Count(&unreported).Error)
	assert.Equal(t, int64(1), unreported)

	// The same order still shows up when the shift actually closes
	z, err := svc.CloseShift("mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), z.TotalOrders)
}

func TestZReportOnlyCountsCompletedOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	seedCompletedOrder(t, db, "ORD-1", "10.00", time.Now())

	voided := &model.Order{
		OrderNumber: "ORD-2",
		OrderDate:   time.Now(),
		TotalAmount: dec("99.00"),
		Subtotal:    dec("99.00"),
		Tax:         dec("0"),
		CashierName: "Dana",
		Status:      model.OrderStatusVoided,
	}
	require.NoError(t, db.Create(voided).Error)

	snap, err := svc.CloseShift("mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.TotalOrders)
	assert.True(t, snap.TotalSales.Equal(dec("10.00")))

	// The voided order must not get swept into the reported set
	var got model.Order
	require.NoError(t, db.First(&got, "order_number = ?", "ORD-2").Error)
	assert.False(t, got.Reported)
}
