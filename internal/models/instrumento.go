package models

import "time"

// Instrumento is a registered financial instrument. Listed by Codigo.
type Instrumento struct {
	Base
	Codigo           string            `gorm:"size:50;uniqueIndex;not null" json:"codigo"`
	Nombre           string            `gorm:"size:255;not null" json:"nombre"`
	Tipo             TipoInstrumento   `gorm:"size:20;not null;index" json:"tipo"`
	Mercado          Mercado           `gorm:"size:5;not null;index" json:"mercado"`
	Estado           EstadoInstrumento `gorm:"size:10;not null;default:'ACTIVO'" json:"estado"`
	FechaEmision     *time.Time        `gorm:"type:date" json:"fecha_emision,omitempty"`
	FechaVencimiento *time.Time        `gorm:"type:date" json:"fecha_vencimiento,omitempty"`
	Calificaciones   []Calificacion    `gorm:"foreignKey:InstrumentoID;constraint:OnDelete:CASCADE" json:"calificaciones,omitempty"`
}

func (Instrumento) TableName() string { return "instrumentos" }
