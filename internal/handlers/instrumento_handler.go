package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nuam/internal/models"
	"nuam/internal/services"
	"nuam/internal/validator"
)

// InstrumentoHandler handles the instrument pages.
type InstrumentoHandler struct {
	instrumentoService services.InstrumentoServicer
	auditService       services.AuditServicer
}

// NewInstrumentoHandler creates a new InstrumentoHandler.
func NewInstrumentoHandler(instrumentoService services.InstrumentoServicer, auditService services.AuditServicer) *InstrumentoHandler {
	return &InstrumentoHandler{instrumentoService: instrumentoService, auditService: auditService}
}

// List shows the instruments matching the query filters.
func (h *InstrumentoHandler) List(c *gin.Context) {
	var query InstrumentoQuery
	_ = c.ShouldBindQuery(&query)

	instrumentos, err := h.instrumentoService.ListInstrumentos(query.filter())
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "instrumentos.html", gin.H{
		"Title":        "Instrumentos",
		"Instrumentos": instrumentos,
		"Filter":       query,
	})
}

// Detail shows one instrument and its ratings.
func (h *InstrumentoHandler) Detail(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	inst, err := h.instrumentoService.GetInstrumentoByID(id)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "instrumento_detalle.html", gin.H{
		"Title":       inst.Codigo,
		"Instrumento": inst,
	})
}

// New shows an empty instrument form.
func (h *InstrumentoHandler) New(c *gin.Context) {
	h.renderForm(c, "/instrumentos/nuevo", false, InstrumentoForm{Estado: string(models.InstrumentoActivo)}, nil)
}

// Create stores a new instrument.
func (h *InstrumentoHandler) Create(c *gin.Context) {
	const action = "/instrumentos/nuevo"

	var form InstrumentoForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, action, false, form, validator.Translate(err))
		return
	}

	inst, err := h.instrumentoService.CreateInstrumento(form.input())
	if err != nil {
		h.renderForm(c, action, false, form, formErrors(c, err))
		return
	}

	h.auditService.Log(actorID(c), services.AuditCreateInstrumento, "instrumento", inst.ID, c.ClientIP(),
		map[string]any{"codigo": inst.Codigo, "mercado": inst.Mercado})

	redirectWithFlash(c, "/instrumentos", fmt.Sprintf("Instrumento %s creado.", inst.Codigo))
}

// Edit shows the form for an existing instrument.
func (h *InstrumentoHandler) Edit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	inst, err := h.instrumentoService.GetInstrumentoByID(id)
	if err != nil {
		renderError(c, err)
		return
	}

	h.renderForm(c, editInstrumentoPath(id), true, newInstrumentoForm(inst), nil)
}

// Update overwrites an existing instrument.
func (h *InstrumentoHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	if _, err := h.instrumentoService.GetInstrumentoByID(id); err != nil {
		renderError(c, err)
		return
	}

	var form InstrumentoForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, editInstrumentoPath(id), true, form, validator.Translate(err))
		return
	}

	inst, err := h.instrumentoService.UpdateInstrumento(id, form.input())
	if err != nil {
		h.renderForm(c, editInstrumentoPath(id), true, form, formErrors(c, err))
		return
	}

	h.auditService.Log(actorID(c), services.AuditUpdateInstrumento, "instrumento", inst.ID, c.ClientIP(),
		map[string]any{"codigo": inst.Codigo, "estado": inst.Estado})

	redirectWithFlash(c, "/instrumentos", fmt.Sprintf("Instrumento %s actualizado.", inst.Codigo))
}

// Delete removes an instrument and its ratings.
func (h *InstrumentoHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.instrumentoService.DeleteInstrumento(id); err != nil {
		renderError(c, err)
		return
	}

	h.auditService.Log(actorID(c), services.AuditDeleteInstrumento, "instrumento", id, c.ClientIP(), nil)

	redirectWithFlash(c, "/instrumentos", "Instrumento eliminado.")
}

// DeleteRedirect answers a GET on the delete URL by going back to the list.
func (h *InstrumentoHandler) DeleteRedirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/instrumentos")
}

func (h *InstrumentoHandler) renderForm(c *gin.Context, action string, editing bool, form InstrumentoForm, errs validator.FieldErrors) {
	title := "Nuevo instrumento"
	if editing {
		title = "Editar instrumento"
	}
	render(c, http.StatusOK, "instrumento_form.html", gin.H{
		"Title":   title,
		"Action":  action,
		"Editing": editing,
		"Form":    form,
		"Errors":  errs,
	})
}

func editInstrumentoPath(id uint) string {
	return fmt.Sprintf("/instrumentos/editar/%d", id)
}
