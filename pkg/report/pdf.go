package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Kind distinguishes the read-only X-report from the shift-closing Z-report.
type Kind string

const (
	KindX Kind = "X-REPORT"
	KindZ Kind = "Z-REPORT"
)

// HourlySales is one row of the per-hour breakdown.
type HourlySales struct {
	Hour   int             `json:"hour"`
	Orders int64           `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

// Snapshot is the immutable result of a report query, captured inside the
// transaction and rendered after commit. The renderer never goes back to
// the database.
type Snapshot struct {
	Kind        Kind            `json:"kind"`
	GeneratedAt time.Time       `json:"generated_at"`
	TotalOrders int64           `json:"total_orders"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	Hourly      []HourlySales   `json:"hourly"`
}

// Render formats a snapshot into a paginated PDF document.
func Render(storeName string, snap Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %s", storeName, snap.Kind), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, string(snap.Kind), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, snap.GeneratedAt.Format("Mon, 02 Jan 2006 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(60, 8, "Total orders", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%d", snap.TotalOrders), "", 1, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total sales", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "$"+snap.TotalSales.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Sales by Hour", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Hour", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Orders", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Sales", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(snap.Hourly) == 0 {
		pdf.CellFormat(120, 7, "No sales in this period", "1", 1, "C", false, 0, "")
	}
	for _, h := range snap.Hourly {
		pdf.CellFormat(40, 7, fmt.Sprintf("%02d:00 - %02d:59", h.Hour, h.Hour), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", h.Orders), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, "$"+h.Sales.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	if snap.Kind == KindZ {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "Shift closed. Orders above are now marked as reported.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
