package models

import (
	"time"

	"gorm.io/gorm"
)

// Persona is a natural person. FechaRegistro is set on insert and never updated.
type Persona struct {
	Base
	Nombre        string    `gorm:"size:50;not null" json:"nombre"`
	Apellido      string    `gorm:"size:50;not null" json:"apellido"`
	RutDNI        string    `gorm:"column:rut_dni;size:20;uniqueIndex;not null" json:"rut_dni"`
	FechaRegistro time.Time `gorm:"type:date;not null;<-:create" json:"fecha_registro"`
}

func (Persona) TableName() string { return "personas" }

// FullName returns "nombre apellido".
func (p Persona) FullName() string {
	return p.Nombre + " " + p.Apellido
}

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.FechaRegistro.IsZero() {
		p.FechaRegistro = Today()
	}
	return nil
}
