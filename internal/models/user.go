package models

import "time"

// User is a system account. Username and email are unique.
type User struct {
	Base
	Username    string       `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string       `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string       `gorm:"not null" json:"-"`
	FirstName   string       `gorm:"size:150" json:"first_name"`
	LastName    string       `gorm:"size:150" json:"last_name"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
	Colaborador *Colaborador `gorm:"foreignKey:UserID" json:"colaborador,omitempty"`
}

func (User) TableName() string { return "users" }
