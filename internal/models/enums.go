package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Choice is a stored code paired with its display label.
type Choice struct {
	Value string
	Label string
}

// TipoInstrumento is the kind of a financial instrument.
type TipoInstrumento string

const (
	TipoAccion   TipoInstrumento = "ACCION"
	TipoBono     TipoInstrumento = "BONO"
	TipoDerivado TipoInstrumento = "DERIVADO"
	TipoOtro     TipoInstrumento = "OTRO"
)

// Mercado is one of the supported national markets.
type Mercado string

const (
	MercadoChile    Mercado = "CL"
	MercadoPeru     Mercado = "PE"
	MercadoColombia Mercado = "CO"
)

// EstadoInstrumento is the lifecycle status of an instrument.
type EstadoInstrumento string

const (
	InstrumentoActivo   EstadoInstrumento = "ACTIVO"
	InstrumentoInactivo EstadoInstrumento = "INACTIVO"
)

// TipoCalificacion is the kind of a rating.
type TipoCalificacion string

const (
	CalificacionRiesgo     TipoCalificacion = "RIESGO"
	CalificacionCredito    TipoCalificacion = "CREDITO"
	CalificacionTributaria TipoCalificacion = "TRIBUTARIA"
)

// EstadoCalificacion is the lifecycle status of a rating.
type EstadoCalificacion string

const (
	CalificacionActiva   EstadoCalificacion = "ACTIVA"
	CalificacionInactiva EstadoCalificacion = "INACTIVA"
)

// Choice lists in display order. Mercados is also the fixed order of the
// per-market report.
var (
	TiposInstrumento = []Choice{
		{string(TipoAccion), "Acción"},
		{string(TipoBono), "Bono"},
		{string(TipoDerivado), "Derivado"},
		{string(TipoOtro), "Otro"},
	}
	Mercados = []Choice{
		{string(MercadoChile), "Chile"},
		{string(MercadoPeru), "Perú"},
		{string(MercadoColombia), "Colombia"},
	}
	EstadosInstrumento = []Choice{
		{string(InstrumentoActivo), "Activo"},
		{string(InstrumentoInactivo), "Inactivo"},
	}
	TiposCalificacion = []Choice{
		{string(CalificacionRiesgo), "Riesgo"},
		{string(CalificacionCredito), "Crédito"},
		{string(CalificacionTributaria), "Tributaria"},
	}
	EstadosCalificacion = []Choice{
		{string(CalificacionActiva), "Activa"},
		{string(CalificacionInactiva), "Inactiva"},
	}
)

// Label returns the display label of the type, or the raw code when unknown.
func (t TipoInstrumento) Label() string { return labelOf(TiposInstrumento, string(t)) }

// Valid reports whether t is a known code.
func (t TipoInstrumento) Valid() bool { return isChoice(TiposInstrumento, string(t)) }

// Label returns the display label of the market.
func (m Mercado) Label() string { return labelOf(Mercados, string(m)) }

// Valid reports whether m is a known code.
func (m Mercado) Valid() bool { return isChoice(Mercados, string(m)) }

// Label returns the display label of the status.
func (e EstadoInstrumento) Label() string { return labelOf(EstadosInstrumento, string(e)) }

// Valid reports whether e is a known code.
func (e EstadoInstrumento) Valid() bool { return isChoice(EstadosInstrumento, string(e)) }

// Label returns the display label of the rating type.
func (t TipoCalificacion) Label() string { return labelOf(TiposCalificacion, string(t)) }

// Valid reports whether t is a known code.
func (t TipoCalificacion) Valid() bool { return isChoice(TiposCalificacion, string(t)) }

// Label returns the display label of the rating status.
func (e EstadoCalificacion) Label() string { return labelOf(EstadosCalificacion, string(e)) }

// Valid reports whether e is a known code.
func (e EstadoCalificacion) Valid() bool { return isChoice(EstadosCalificacion, string(e)) }

// ParseTipoInstrumento accepts a code ("BONO") or a label ("Bono", "accion").
func ParseTipoInstrumento(s string) (TipoInstrumento, bool) {
	v, ok := parseChoice(TiposInstrumento, s)
	return TipoInstrumento(v), ok
}

// ParseMercado accepts a code ("CL") or a label ("Perú", "peru").
func ParseMercado(s string) (Mercado, bool) {
	v, ok := parseChoice(Mercados, s)
	return Mercado(v), ok
}

// ParseEstadoInstrumento accepts a code or a label.
func ParseEstadoInstrumento(s string) (EstadoInstrumento, bool) {
	v, ok := parseChoice(EstadosInstrumento, s)
	return EstadoInstrumento(v), ok
}

// ParseTipoCalificacion accepts a code or a label.
func ParseTipoCalificacion(s string) (TipoCalificacion, bool) {
	v, ok := parseChoice(TiposCalificacion, s)
	return TipoCalificacion(v), ok
}

// ParseEstadoCalificacion accepts a code or a label.
func ParseEstadoCalificacion(s string) (EstadoCalificacion, bool) {
	v, ok := parseChoice(EstadosCalificacion, s)
	return EstadoCalificacion(v), ok
}

func labelOf(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func isChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func parseChoice(choices []Choice, s string) (string, bool) {
	key := Fold(s)
	if key == "" {
		return "", false
	}
	for _, c := range choices {
		if Fold(c.Value) == key || Fold(c.Label) == key {
			return c.Value, true
		}
	}
	return "", false
}

// Fold lowercases s, trims it and strips diacritics, so "Crédito" and
// "CREDITO" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}
