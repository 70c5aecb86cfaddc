// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nuam/internal/models"
)

// Register registers all custom validators with the Gin binding engine and
// makes field errors report the form field name instead of the Go name.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(formTagName)
		_ = v.RegisterValidation("tipo_instrumento", validateTipoInstrumento)
		_ = v.RegisterValidation("mercado", validateMercado)
		_ = v.RegisterValidation("estado_instrumento", validateEstadoInstrumento)
		_ = v.RegisterValidation("tipo_calificacion", validateTipoCalificacion)
		_ = v.RegisterValidation("estado_calificacion", validateEstadoCalificacion)
		_ = v.RegisterValidation("fecha", validateFecha)
		_ = v.RegisterValidation("monto", validateMonto)
	}
}

func formTagName(fld reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validateTipoInstrumento(fl validator.FieldLevel) bool {
	return models.TipoInstrumento(fl.Field().String()).Valid()
}

func validateMercado(fl validator.FieldLevel) bool {
	return models.Mercado(fl.Field().String()).Valid()
}

func validateEstadoInstrumento(fl validator.FieldLevel) bool {
	return models.EstadoInstrumento(fl.Field().String()).Valid()
}

func validateTipoCalificacion(fl validator.FieldLevel) bool {
	return models.TipoCalificacion(fl.Field().String()).Valid()
}

func validateEstadoCalificacion(fl validator.FieldLevel) bool {
	return models.EstadoCalificacion(fl.Field().String()).Valid()
}

// validateFecha accepts an ISO date; combine with omitempty for optional dates.
func validateFecha(fl validator.FieldLevel) bool {
	t, err := models.ParseFecha(fl.Field().String())
	return err == nil && t != nil
}

func validateMonto(fl validator.FieldLevel) bool {
	_, err := models.ParseMonto(fl.Field().String())
	return err == nil
}

// FieldError is one invalid form field with its display message.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the list of problems found in a submitted form.
type FieldErrors []FieldError

// Get returns the message for field, or "" when it is valid.
func (fe FieldErrors) Get(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Add appends a message for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Translate turns a binding error into display messages. Errors that are not
// validation errors (malformed bodies, bad numbers) become a single entry
// under the empty field name.
func Translate(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Message: "Datos inválidos."}}
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "email":
		return "Ingresa un correo válido."
	case "max":
		return "Supera el largo máximo de " + fe.Param() + " caracteres."
	case "min":
		return "Debe tener al menos " + fe.Param() + " caracteres."
	case "eqfield":
		return "Las contraseñas no coinciden."
	case "fecha":
		return "Fecha inválida (AAAA-MM-DD)."
	case "monto":
		return "Monto inválido."
	case "tipo_instrumento", "mercado", "estado_instrumento", "tipo_calificacion", "estado_calificacion", "oneof":
		return "Selecciona una opción válida."
	default:
		return "Valor inválido."
	}
}
