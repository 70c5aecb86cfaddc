package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nuam/internal/errors"
	"nuam/internal/middleware"
	"nuam/internal/services"
	"nuam/internal/validator"
)

// AuthHandler handles login, logout and account creation.
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
	sessions     *middleware.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService, sessions: sessions}
}

// Home sends visitors to the login page.
func (h *AuthHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage shows the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Iniciar sesión",
		"Form":  LoginForm{Next: c.Query("next")},
	})
}

// Login checks the credentials, starts the session and redirects to the
// requested page. Failures re-render the form without a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.loginFailed(c, form, apperrors.ErrMissingFields.Message)
		return
	}

	user, err := h.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		h.loginFailed(c, form, formErrors(c, err).Get(""))
		return
	}

	if err := h.sessions.Start(c, user); err != nil {
		renderError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.auditService.Log(user.ID, services.AuditLogin, "user", user.ID, c.ClientIP(), nil)

	c.Redirect(http.StatusSeeOther, safeNext(form.Next))
}

func (h *AuthHandler) loginFailed(c *gin.Context, form LoginForm, message string) {
	form.Password = ""
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Iniciar sesión",
		"Form":  form,
		"Error": message,
	})
}

// Logout ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.End(c)
	c.Redirect(http.StatusFound, "/login")
}

// SignupPage shows the account creation form.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{
		"Title": "Crear cuenta",
		"Form":  SignupForm{},
	})
}

// Signup creates the account and sends the user to the login page.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		h.signupFailed(c, form, validator.Translate(err))
		return
	}

	user, err := h.userService.Register(form.input())
	if err != nil {
		h.signupFailed(c, form, formErrors(c, err))
		return
	}
	h.auditService.Log(user.ID, services.AuditSignup, "user", user.ID, c.ClientIP(),
		map[string]any{"username": user.Username})

	redirectWithFlash(c, "/login", "Cuenta creada. Ya puedes iniciar sesión.")
}

func (h *AuthHandler) signupFailed(c *gin.Context, form SignupForm, errs validator.FieldErrors) {
	form.Password, form.PasswordConfirm = "", ""
	render(c, http.StatusOK, "signup.html", gin.H{
		"Title":  "Crear cuenta",
		"Form":   form,
		"Errors": errs,
	})
}
