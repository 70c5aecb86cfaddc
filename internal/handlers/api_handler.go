package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nuam/internal/marketdata"
	"nuam/internal/models"
	"nuam/internal/services"
)

// APIHandler serves the read-only JSON API.
type APIHandler struct {
	instrumentoService services.InstrumentoServicer
	reportService      services.ReportServicer
	marketService      services.MarketServicer
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(instrumentoService services.InstrumentoServicer, reportService services.ReportServicer, marketService services.MarketServicer) *APIHandler {
	return &APIHandler{
		instrumentoService: instrumentoService,
		reportService:      reportService,
		marketService:      marketService,
	}
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// InstrumentoResponse is an instrument as returned by the API.
type InstrumentoResponse struct {
	ID               uint                     `json:"id"`
	Codigo           string                   `json:"codigo"`
	Nombre           string                   `json:"nombre"`
	Tipo             models.TipoInstrumento   `json:"tipo"`
	Mercado          models.Mercado           `json:"mercado"`
	Estado           models.EstadoInstrumento `json:"estado"`
	FechaEmision     string                   `json:"fecha_emision,omitempty"`
	FechaVencimiento string                   `json:"fecha_vencimiento,omitempty"`
}

// InstrumentoListResponse wraps the instrument listing.
type InstrumentoListResponse struct {
	Data  []InstrumentoResponse `json:"data"`
	Total int                   `json:"total"`
}

// MarketListResponse wraps the market snapshots.
type MarketListResponse struct {
	Data []marketdata.Snapshot `json:"data"`
}

// Health reports that the server is up.
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /health [get]
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListInstrumentos returns the instruments matching the query filters.
// @Summary     List instruments
// @Description Filters are optional and combined with AND. q matches codigo or nombre.
// @Tags        instrumentos
// @Produce     json
// @Security    ApiKeyAuth
// @Param       q       query string false "Substring of codigo or nombre"
// @Param       tipo    query string false "ACCION, BONO, DERIVADO or OTRO"
// @Param       mercado query string false "CL, PE or CO"
// @Param       estado  query string false "ACTIVO or INACTIVO"
// @Success     200 {object} InstrumentoListResponse
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/instrumentos [get]
func (h *APIHandler) ListInstrumentos(c *gin.Context) {
	var query InstrumentoQuery
	_ = c.ShouldBindQuery(&query)

	instrumentos, err := h.instrumentoService.ListInstrumentos(query.filter())
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := make([]InstrumentoResponse, 0, len(instrumentos))
	for _, inst := range instrumentos {
		data = append(data, InstrumentoResponse{
			ID:               inst.ID,
			Codigo:           inst.Codigo,
			Nombre:           inst.Nombre,
			Tipo:             inst.Tipo,
			Mercado:          inst.Mercado,
			Estado:           inst.Estado,
			FechaEmision:     models.FormatFecha(inst.FechaEmision),
			FechaVencimiento: models.FormatFecha(inst.FechaVencimiento),
		})
	}
	c.JSON(http.StatusOK, InstrumentoListResponse{Data: data, Total: len(data)})
}

// Report returns the aggregate report.
// @Summary     Registry report
// @Tags        reportes
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} services.Report
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/reportes [get]
func (h *APIHandler) Report(c *gin.Context) {
	report, err := h.reportService.Report()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Markets returns one live snapshot per market. Markets without quotes have
// null figures.
// @Summary     Market snapshots
// @Tags        mercados
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} MarketListResponse
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /v1/mercados [get]
func (h *APIHandler) Markets(c *gin.Context) {
	c.JSON(http.StatusOK, MarketListResponse{Data: h.marketService.Snapshots(c.Request.Context())})
}
