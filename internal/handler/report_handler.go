package handler

import (
	"fmt"
	"time"

	"go-boba-pos/internal/service"
	"go-boba-pos/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service   service.ReportService
	storeName string
}

func NewReportHandler(s service.ReportService, storeName string) *ReportHandler {
	return &ReportHandler{service: s, storeName: storeName}
}

// XReport handles GET /api/products/reports/x-report-pdf.
// Read-only: nothing is marked reported.
func (h *ReportHandler) XReport(c *fiber.Ctx) error {
	snap, err := h.service.RunXReport()
	if err != nil {
		return respondError(c, 500, err)
	}
	return h.sendPDF(c, snap)
}

// ZReport handles POST /api/products/reports/z-report-pdf.
// The shift is closed once the transaction commits; a PDF render failure
// afterwards does not reopen it.
func (h *ReportHandler) ZReport(c *fiber.Ctx) error {
	snap, err := h.service.CloseShift(getEmployeeID(c))
	if err != nil {
		return respondError(c, 500, err)
	}
	return h.sendPDF(c, snap)
}

func (h *ReportHandler) sendPDF(c *fiber.Ctx, snap report.Snapshot) error {
	pdfBytes, err := report.Render(h.storeName, snap)
	if err != nil {
		return respondError(c, 500, err)
	}

	filename := fmt.Sprintf("%s-%s.pdf", snap.Kind, time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
