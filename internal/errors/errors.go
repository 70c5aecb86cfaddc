// Package errors provides the application error type used by every service.
// Messages are user-facing display strings: handlers render them inline on
// forms, so they must never carry internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// a display message, an HTTP status code and an optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// copies produced by Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Debes iniciar sesión", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Usuario o contraseña incorrectos", StatusCode: http.StatusUnauthorized}
	ErrInvalidAPIKey      = &AppError{Code: "INVALID_API_KEY", Message: "API key inválida o ausente", StatusCode: http.StatusUnauthorized}
	ErrAPINotConfigured   = &AppError{Code: "API_NOT_CONFIGURED", Message: "La API no está configurada", StatusCode: http.StatusServiceUnavailable}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Datos inválidos", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Recurso no encontrado", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Ocurrió un error interno", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "Usuario no encontrado", StatusCode: http.StatusNotFound}
	ErrMissingFields      = &AppError{Code: "MISSING_FIELDS", Message: "Completa todos los campos.", StatusCode: http.StatusBadRequest}
	ErrPasswordMismatch   = &AppError{Code: "PASSWORD_MISMATCH", Message: "Las contraseñas no coinciden.", StatusCode: http.StatusBadRequest}
	ErrDuplicateUsername  = &AppError{Code: "DUPLICATE_USERNAME", Message: "Usuario ya existe.", StatusCode: http.StatusConflict}
	ErrDuplicateEmail     = &AppError{Code: "DUPLICATE_EMAIL", Message: "El correo ya está registrado.", StatusCode: http.StatusConflict}
	ErrDuplicatePersona   = &AppError{Code: "DUPLICATE_PERSONA", Message: "La persona ya es colaborador.", StatusCode: http.StatusConflict}
	ErrColaboradorExists  = &AppError{Code: "COLABORADOR_EXISTS", Message: "El usuario ya tiene un colaborador asociado.", StatusCode: http.StatusConflict}
	ErrColaboradorMissing = &AppError{Code: "COLABORADOR_NOT_FOUND", Message: "Colaborador no encontrado", StatusCode: http.StatusNotFound}
)

// Instrumento errors.
var (
	ErrInstrumentoNotFound = &AppError{Code: "INSTRUMENTO_NOT_FOUND", Message: "Instrumento no encontrado", StatusCode: http.StatusNotFound}
	ErrDuplicateCodigo     = &AppError{Code: "DUPLICATE_CODIGO", Message: "Ya existe un instrumento con ese código.", StatusCode: http.StatusConflict}
)

// Calificacion errors.
var (
	ErrCalificacionNotFound = &AppError{Code: "CALIFICACION_NOT_FOUND", Message: "Calificación no encontrada", StatusCode: http.StatusNotFound}
)

// Bulk import errors.
var (
	ErrMissingFile        = &AppError{Code: "MISSING_FILE", Message: "Debes seleccionar un archivo CSV.", StatusCode: http.StatusBadRequest}
	ErrMissingMercado     = &AppError{Code: "MISSING_MERCADO", Message: "Selecciona un mercado para cargar instrumentos.", StatusCode: http.StatusBadRequest}
	ErrUnknownImportKind  = &AppError{Code: "UNKNOWN_IMPORT_KIND", Message: "Tipo de carga no reconocido.", StatusCode: http.StatusBadRequest}
	ErrInvalidHeaders     = &AppError{Code: "INVALID_HEADERS", Message: "Encabezados inválidos.", StatusCode: http.StatusBadRequest}
	ErrInvalidRow         = &AppError{Code: "INVALID_ROW", Message: "Fila inválida.", StatusCode: http.StatusBadRequest}
	ErrUnknownInstrumento = &AppError{Code: "UNKNOWN_INSTRUMENTO", Message: "El archivo referencia un instrumento inexistente.", StatusCode: http.StatusBadRequest}
	ErrFileProcessing     = &AppError{Code: "FILE_PROCESSING", Message: "Error al procesar el archivo.", StatusCode: http.StatusBadRequest}
)
