package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "nuam/internal/errors"
	"nuam/internal/logger"
	"nuam/internal/models"
	"nuam/internal/services"
)

// CargaHandler handles CSV bulk uploads.
type CargaHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewCargaHandler creates a new CargaHandler.
func NewCargaHandler(importService services.ImportServicer, auditService services.AuditServicer) *CargaHandler {
	return &CargaHandler{importService: importService, auditService: auditService}
}

// Page shows the upload form.
func (h *CargaHandler) Page(c *gin.Context) {
	h.renderPage(c, CargaForm{Tipo: string(services.ImportInstrumentos)}, "")
}

// Upload imports the submitted file. The whole file is applied or nothing is.
func (h *CargaHandler) Upload(c *gin.Context) {
	var form CargaForm
	_ = c.ShouldBind(&form)

	header, err := c.FormFile("archivo")
	if err != nil {
		h.renderPage(c, form, apperrors.ErrMissingFile.Message)
		return
	}
	file, err := header.Open()
	if err != nil {
		logger.Get().Warnw("cannot open upload", "error", err, "filename", header.Filename)
		h.renderPage(c, form, apperrors.ErrFileProcessing.Message)
		return
	}
	defer func() { _ = file.Close() }()

	kind := services.ImportKind(strings.ToUpper(strings.TrimSpace(form.Tipo)))
	result, err := h.importService.Import(kind, file, models.Mercado(form.Mercado))
	if err != nil {
		h.renderPage(c, form, formErrors(c, err).Get(""))
		return
	}

	action := services.AuditImportInstrumentos
	if result.Kind == services.ImportCalificaciones {
		action = services.AuditImportCalificaciones
	}
	h.auditService.Log(actorID(c), action, "carga", 0, c.ClientIP(),
		map[string]any{"archivo": header.Filename, "procesados": result.Processed, "mercado": form.Mercado})

	redirectWithFlash(c, "/carga-masiva", result.Message)
}

func (h *CargaHandler) renderPage(c *gin.Context, form CargaForm, message string) {
	render(c, http.StatusOK, "carga_masiva.html", gin.H{
		"Title":               "Carga masiva",
		"Form":                form,
		"Error":               message,
		"InstrumentoHeaders":  strings.Join(services.InstrumentoHeaders, ","),
		"CalificacionHeaders": strings.Join(services.CalificacionHeaders, ","),
	})
}
