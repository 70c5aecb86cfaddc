package models

import (
	"time"
)

// Base contains common columns for all tables. CreatedAt is write-once.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:creado_en;autoCreateTime;<-:create" json:"creado_en"`
}

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Persona{},
		&Colaborador{},
		&Instrumento{},
		&Calificacion{},
		&AuditLog{},
	}
}

// Today returns the current date at UTC midnight.
func Today() time.Time {
	return DateOnly(time.Now())
}

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
