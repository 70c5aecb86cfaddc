package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nuam/internal/models"
	"nuam/internal/services"
	"nuam/internal/validator"
)

// CalificacionHandler handles the rating pages.
type CalificacionHandler struct {
	calificacionService services.CalificacionServicer
	instrumentoService  services.InstrumentoServicer
	auditService        services.AuditServicer
}

// NewCalificacionHandler creates a new CalificacionHandler.
func NewCalificacionHandler(calificacionService services.CalificacionServicer, instrumentoService services.InstrumentoServicer, auditService services.AuditServicer) *CalificacionHandler {
	return &CalificacionHandler{
		calificacionService: calificacionService,
		instrumentoService:  instrumentoService,
		auditService:        auditService,
	}
}

// List shows the ratings matching the query filters, newest first.
func (h *CalificacionHandler) List(c *gin.Context) {
	var query CalificacionQuery
	_ = c.ShouldBindQuery(&query)

	calificaciones, err := h.calificacionService.ListCalificaciones(query.filter())
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "calificaciones.html", gin.H{
		"Title":          "Calificaciones",
		"Calificaciones": calificaciones,
		"Filter":         query,
	})
}

// New shows an empty rating form. ?instrumento=ID preselects the instrument.
func (h *CalificacionHandler) New(c *gin.Context) {
	form := CalificacionForm{
		Estado: string(models.CalificacionActiva),
		Fecha:  models.Today().Format(models.DateLayout),
	}
	if id, err := strconv.ParseUint(c.Query("instrumento"), 10, 32); err == nil {
		form.InstrumentoID = uint(id)
	}
	h.renderForm(c, "/calificaciones/nueva", false, form, nil)
}

// Create stores a new rating.
func (h *CalificacionHandler) Create(c *gin.Context) {
	const action = "/calificaciones/nueva"

	var form CalificacionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, action, false, form, validator.Translate(err))
		return
	}

	cal, err := h.calificacionService.CreateCalificacion(form.input())
	if err != nil {
		h.renderForm(c, action, false, form, formErrors(c, err))
		return
	}

	h.auditService.Log(actorID(c), services.AuditCreateCalificacion, "calificacion", cal.ID, c.ClientIP(),
		map[string]any{"instrumento_id": cal.InstrumentoID, "estado": cal.Estado})

	redirectWithFlash(c, "/calificaciones", fmt.Sprintf("Calificación %s creada.", cal.Codigo()))
}

// Edit shows the form for an existing rating.
func (h *CalificacionHandler) Edit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	cal, err := h.calificacionService.GetCalificacionByID(id)
	if err != nil {
		renderError(c, err)
		return
	}

	h.renderForm(c, editCalificacionPath(id), true, newCalificacionForm(cal), nil)
}

// Update overwrites an existing rating.
func (h *CalificacionHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	if _, err := h.calificacionService.GetCalificacionByID(id); err != nil {
		renderError(c, err)
		return
	}

	var form CalificacionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, editCalificacionPath(id), true, form, validator.Translate(err))
		return
	}

	cal, err := h.calificacionService.UpdateCalificacion(id, form.input())
	if err != nil {
		h.renderForm(c, editCalificacionPath(id), true, form, formErrors(c, err))
		return
	}

	h.auditService.Log(actorID(c), services.AuditUpdateCalificacion, "calificacion", cal.ID, c.ClientIP(),
		map[string]any{"instrumento_id": cal.InstrumentoID, "estado": cal.Estado})

	redirectWithFlash(c, "/calificaciones", fmt.Sprintf("Calificación %s actualizada.", cal.Codigo()))
}

// Delete removes a rating. Missing ratings get the 404 page.
func (h *CalificacionHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.calificacionService.DeleteCalificacion(id); err != nil {
		renderError(c, err)
		return
	}

	h.auditService.Log(actorID(c), services.AuditDeleteCalificacion, "calificacion", id, c.ClientIP(), nil)

	redirectWithFlash(c, "/calificaciones", "Calificación eliminada.")
}

func (h *CalificacionHandler) renderForm(c *gin.Context, action string, editing bool, form CalificacionForm, errs validator.FieldErrors) {
	instrumentos, err := h.instrumentoService.ListInstrumentos(services.InstrumentoFilter{})
	if err != nil {
		renderError(c, err)
		return
	}

	title := "Nueva calificación"
	if editing {
		title = "Editar calificación"
	}
	render(c, http.StatusOK, "calificacion_form.html", gin.H{
		"Title":        title,
		"Action":       action,
		"Editing":      editing,
		"Form":         form,
		"Errors":       errs,
		"Instrumentos": instrumentos,
	})
}

func editCalificacionPath(id uint) string {
	return fmt.Sprintf("/calificaciones/editar/%d", id)
}
