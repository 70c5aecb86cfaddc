// Package web holds the embedded HTML templates and the helpers they use.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"nuam/internal/models"
)

//go:embed templates/*.html
var files embed.FS

const noData = "s/d"

// Templates parses every page and partial. Pages are addressed by file name,
// e.g. "instrumentos.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"fecha":   Fecha,
		"monto":   Monto,
		"precio":  Precio,
		"pct":     Pct,
		"hora":    func(t time.Time) string { return t.Format("02-01-2006 15:04") },
		"json":    toJSON,
		"choices": choices,
	}
}

// Fecha renders a date as YYYY-MM-DD. Nil and zero dates render empty.
func Fecha(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(models.DateLayout)
	case *time.Time:
		return models.FormatFecha(t)
	default:
		return ""
	}
}

// Monto renders an amount with two decimals. Null amounts render empty.
func Monto(v any) string {
	switch m := v.(type) {
	case decimal.NullDecimal:
		return models.FormatMonto(m)
	case decimal.Decimal:
		return m.StringFixed(2)
	default:
		return ""
	}
}

// Precio renders an optional quote.
func Precio(p *float64) string {
	if p == nil {
		return noData
	}
	return fmt.Sprintf("%.2f", *p)
}

// Pct renders an optional variation with its sign.
func Pct(p *float64) string {
	if p == nil {
		return noData
	}
	return fmt.Sprintf("%+.2f%%", *p)
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// choices returns the option list for a select by name.
func choices(name string) []models.Choice {
	switch name {
	case "tipo_instrumento":
		return models.TiposInstrumento
	case "mercado":
		return models.Mercados
	case "estado_instrumento":
		return models.EstadosInstrumento
	case "tipo_calificacion":
		return models.TiposCalificacion
	case "estado_calificacion":
		return models.EstadosCalificacion
	default:
		return nil
	}
}
