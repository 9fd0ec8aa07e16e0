package service

import (
	"sort"
	"time"

	"go-boba-pos/internal/model"
	"go-boba-pos/pkg/report"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService interface {
	// RunXReport is the read-only snapshot of the open shift.
	RunXReport() (report.Snapshot, error)
	// CloseShift snapshots all completed, unreported orders and marks them
	// reported in one transaction. Rendering happens after commit from the
	// returned snapshot; a render failure does not reopen the shift.
	CloseShift(closedBy string) (report.Snapshot, error)
}

type reportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

func (s *reportService) RunXReport() (report.Snapshot, error) {
	snap, err := snapshotOpenShift(s.db)
	if err != nil {
		return report.Snapshot{}, err
	}
	snap.Kind = report.KindX
	return snap, nil
}

func (s *reportService) CloseShift(closedBy string) (report.Snapshot, error) {
	var snap report.Snapshot

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		snap, err = snapshotOpenShift(tx)
		if err != nil {
			return err
		}

		// Monotonic: reported only ever flips false -> true. The filter
		// matches exactly the rows the snapshot counted.
		return tx.Model(&model.Order{}).
			Where("status = ? AND reported = ?", model.OrderStatusCompleted, false).
			Updates(map[string]interface{}{
				"reported":   true,
				"updated_by": closedBy,
			}).Error
	})
	if err != nil {
		return report.Snapshot{}, err
	}

	snap.Kind = report.KindZ
	return snap, nil
}

// snapshotOpenShift aggregates all completed, unreported orders. The hourly
// fold happens in Go over the selected rows so the snapshot handed to the
// renderer is self-contained and never re-queried.
func snapshotOpenShift(tx *gorm.DB) (report.Snapshot, error) {
	var rows []struct {
		OrderDate   time.Time
		TotalAmount decimal.Decimal
	}
	err := tx.Model(&model.Order{}).
		Select("order_date", "total_amount").
		Where("status = ? AND reported = ?", model.OrderStatusCompleted, false).
		Find(&rows).Error
	if err != nil {
		return report.Snapshot{}, err
	}

	snap := report.Snapshot{
		GeneratedAt: time.Now(),
		TotalOrders: int64(len(rows)),
		TotalSales:  decimal.Zero,
		Hourly:      []report.HourlySales{},
	}

	byHour := make(map[int]*report.HourlySales)
	for _, row := range rows {
		snap.TotalSales = snap.TotalSales.Add(row.TotalAmount)

		hour := row.OrderDate.Hour()
		bucket, ok := byHour[hour]
		if !ok {
			bucket = &report.HourlySales{Hour: hour, Sales: decimal.Zero}
			byHour[hour] = bucket
		}
		bucket.Orders++
		bucket.Sales = bucket.Sales.Add(row.TotalAmount)
	}

	for _, bucket := range byHour {
		snap.Hourly = append(snap.Hourly, *bucket)
	}
	sort.Slice(snap.Hourly, func(i, j int) bool {
		return snap.Hourly[i].Hour < snap.Hourly[j].Hour
	})

	return snap, nil
}
