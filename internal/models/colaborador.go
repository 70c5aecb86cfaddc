package models

import (
	"time"

	"gorm.io/gorm"
)

// Colaborador links a Persona to a User account, one to one on both sides.
type Colaborador struct {
	Base
	PersonaID    uint      `gorm:"not null;uniqueIndex" json:"persona_id"`
	Persona      Persona   `gorm:"constraint:OnDelete:CASCADE" json:"persona"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Cargo        string    `gorm:"size:50;not null" json:"cargo"`
	NivelAcceso  string    `gorm:"size:20;not null" json:"nivel_acceso"`
	FechaIngreso time.Time `gorm:"type:date;not null;<-:create" json:"fecha_ingreso"`
}

func (Colaborador) TableName() string { return "colaboradores" }

func (c *Colaborador) BeforeCreate(tx *gorm.DB) error {
	if c.FechaIngreso.IsZero() {
		c.FechaIngreso = Today()
	}
	return nil
}
