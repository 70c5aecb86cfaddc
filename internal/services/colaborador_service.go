package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/models"
)

// colaboradorService manages staff profiles.
type colaboradorService struct {
	db *gorm.DB
}

// NewColaboradorService creates a new ColaboradorServicer.
func NewColaboradorService(db *gorm.DB) ColaboradorServicer {
	return &colaboradorService{db: db}
}

// CreateColaborador creates the Persona and its Colaborador in one
// transaction. A user and a persona can each have only one profile.
func (s *colaboradorService) CreateColaborador(input ColaboradorInput) (*models.Colaborador, error) {
	persona := models.Persona{
		Nombre:   strings.TrimSpace(input.Nombre),
		Apellido: strings.TrimSpace(input.Apellido),
		RutDNI:   strings.TrimSpace(input.RutDNI),
	}
	cargo := strings.TrimSpace(input.Cargo)
	nivel := strings.TrimSpace(input.NivelAcceso)
	if persona.Nombre == "" || persona.Apellido == "" || persona.RutDNI == "" || cargo == "" || nivel == "" {
		return nil, apperrors.ErrMissingFields
	}

	var colaborador models.Colaborador
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, input.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := tx.Model(&models.Colaborador{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrColaboradorExists
		}
		if err := tx.Model(&models.Persona{}).Where("rut_dni = ?", persona.RutDNI).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicatePersona
		}

		if err := tx.Create(&persona).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicatePersona
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		colaborador = models.Colaborador{
			PersonaID:   persona.ID,
			Persona:     persona,
			UserID:      user.ID,
			Cargo:       cargo,
			NivelAcceso: nivel,
		}
		if err := tx.Omit("Persona", "User").Create(&colaborador).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrColaboradorExists
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &colaborador, nil
}

// GetColaboradorByUserID returns the staff profile of a user.
func (s *colaboradorService) GetColaboradorByUserID(userID uint) (*models.Colaborador, error) {
	var colaborador models.Colaborador
	if err := s.db.Preload("Persona").Where("user_id = ?", userID).First(&colaborador).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrColaboradorMissing
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &colaborador, nil
}
