package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "nuam/internal/errors"
	"nuam/internal/logger"
	"nuam/internal/session"
	"nuam/internal/validator"
)

// flashCookie carries a one-shot message across a POST/redirect/GET cycle.
const flashCookie = "nuam_flash"

// defaultLanding is where logins land when no safe next path is given.
const defaultLanding = "/dashboard"

// currentIdentity returns the logged-in user of the request.
func currentIdentity(c *gin.Context) (session.Identity, bool) {
	return session.FromContext(c.Request.Context())
}

// actorID is the user id recorded in audit entries; 0 when anonymous.
func actorID(c *gin.Context) uint {
	id, _ := currentIdentity(c)
	return id.UserID
}

// parsePathID parses a uint path parameter.
// Returns ErrNotFound if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// render executes a page template. The identity, pending flash message and
// an empty error list are always available to the page.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if id, ok := currentIdentity(c); ok {
		data["Identity"] = id
	}
	if msg := popFlash(c); msg != "" {
		data["Flash"] = msg
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = validator.FieldErrors(nil)
	}
	c.HTML(status, page, data)
}

// renderError shows the error page. Not-found AppErrors become a 404; any
// other error is logged and shown as a generic 500.
func renderError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound {
		render(c, http.StatusNotFound, "error.html", gin.H{
			"Title":   "No encontrado",
			"Status":  http.StatusNotFound,
			"Message": appErr.Message,
		})
		return
	}

	logger.Get().Errorw("request failed",
		"error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Status":  http.StatusInternalServerError,
		"Message": apperrors.ErrInternalServer.Message,
	})
}

// formErrors turns a service error into a form-level message. Client errors
// keep their display message; server errors are logged and hidden.
func formErrors(c *gin.Context, err error) validator.FieldErrors {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
		return validator.FieldErrors{{Message: appErr.Message}}
	}
	logger.Get().Errorw("form submission failed", "error", err, "path", c.Request.URL.Path)
	return validator.FieldErrors{{Message: apperrors.ErrInternalServer.Message}}
}

// redirectWithFlash answers a successful POST with 303 See Other.
func redirectWithFlash(c *gin.Context, location, message string) {
	if message != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, message, 0, "/", "", false, true)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// popFlash returns and clears the pending flash message.
func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return defaultLanding
	}
	return next
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c *gin.Context) {
	renderError(c, apperrors.ErrNotFound)
}
