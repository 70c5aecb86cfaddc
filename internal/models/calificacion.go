package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CodigoPrefix is prepended to a rating id to build its display code.
const CodigoPrefix = "CAL-"

// Calificacion is a dated rating of one Instrumento. Listed by Fecha descending.
type Calificacion struct {
	Base
	InstrumentoID uint                `gorm:"not null;index" json:"instrumento_id"`
	Instrumento   *Instrumento        `json:"instrumento,omitempty"`
	Tipo          TipoCalificacion    `gorm:"size:20;not null" json:"tipo"`
	Estado        EstadoCalificacion  `gorm:"size:10;not null;default:'ACTIVA';index" json:"estado"`
	Fecha         time.Time           `gorm:"type:date;not null;index" json:"fecha"`
	Monto         decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"monto"`
}

func (Calificacion) TableName() string { return "calificaciones" }

// Codigo returns the display code, e.g. "CAL-12".
func (c Calificacion) Codigo() string {
	return CodigoPrefix + strconv.FormatUint(uint64(c.ID), 10)
}
