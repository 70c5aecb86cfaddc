package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nuam/internal/pagination"
	"nuam/internal/services"
	"nuam/internal/validator"
)

const recentAuditEntries = 20

// AdminHandler handles the administration page.
type AdminHandler struct {
	userService        services.UserServicer
	colaboradorService services.ColaboradorServicer
	auditService       services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService services.UserServicer, colaboradorService services.ColaboradorServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{
		userService:        userService,
		colaboradorService: colaboradorService,
		auditService:       auditService,
	}
}

// Page lists users, their staff profiles and the latest audit entries.
func (h *AdminHandler) Page(c *gin.Context) {
	h.renderPage(c, ColaboradorForm{}, nil)
}

// CreateColaborador attaches a staff profile to a user.
func (h *AdminHandler) CreateColaborador(c *gin.Context) {
	var form ColaboradorForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderPage(c, form, validator.Translate(err))
		return
	}

	col, err := h.colaboradorService.CreateColaborador(form.input())
	if err != nil {
		h.renderPage(c, form, formErrors(c, err))
		return
	}

	h.auditService.Log(actorID(c), services.AuditCreateColaborador, "colaborador", col.ID, c.ClientIP(),
		map[string]any{"user_id": col.UserID, "cargo": col.Cargo})

	redirectWithFlash(c, "/admin", "Colaborador registrado.")
}

func (h *AdminHandler) renderPage(c *gin.Context, form ColaboradorForm, errs validator.FieldErrors) {
	var page pagination.PageRequest
	_ = c.ShouldBindQuery(&page)

	users, err := h.userService.ListUsers(page)
	if err != nil {
		renderError(c, err)
		return
	}
	audit, err := h.auditService.Recent(recentAuditEntries)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "admin.html", gin.H{
		"Title":  "Administración",
		"Users":  users,
		"Audit":  audit,
		"Form":   form,
		"Errors": errs,
	})
}
