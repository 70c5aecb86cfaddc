package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nuam/internal/logger"
	"nuam/internal/services"
)

// ReportHandler handles the report page and the CSV exports.
type ReportHandler struct {
	reportService services.ReportServicer
	exportService services.ExportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, exportService services.ExportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// Report shows the aggregate report.
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.reportService.Report()
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "reportes.html", gin.H{
		"Title":  "Reportes",
		"Report": report,
	})
}

// ExportInstrumentos downloads every instrument as CSV.
func (h *ReportHandler) ExportInstrumentos(c *gin.Context) {
	streamCSV(c, "instrumentos.csv", h.exportService.ExportInstrumentos)
}

// ExportCalificaciones downloads every rating as CSV.
func (h *ReportHandler) ExportCalificaciones(c *gin.Context) {
	streamCSV(c, "calificaciones.csv", h.exportService.ExportCalificaciones)
}

// streamCSV writes the attachment headers and streams the export. Once rows
// are flowing the status can no longer change, so late errors are only logged.
func streamCSV(c *gin.Context, filename string, export func(io.Writer) error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := export(c.Writer); err != nil {
		logger.Get().Errorw("csv export failed", "file", filename, "error", err)
	}
}
