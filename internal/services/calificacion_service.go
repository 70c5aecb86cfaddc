package services

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/models"
)

var calificacionUpdatable = []string{"instrumento_id", "tipo", "estado", "fecha", "monto"}

// calificacionService handles rating-related business logic.
type calificacionService struct {
	db *gorm.DB
}

// NewCalificacionService creates a new CalificacionServicer.
func NewCalificacionService(db *gorm.DB) CalificacionServicer {
	return &calificacionService{db: db}
}

// CreateCalificacion creates a rating for an existing instrument.
func (s *calificacionService) CreateCalificacion(input CalificacionInput) (*models.Calificacion, error) {
	cal := &models.Calificacion{}
	if err := s.apply(cal, input); err != nil {
		return nil, err
	}
	if err := s.db.Omit("Instrumento").Create(cal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cal, nil
}

// GetCalificacionByID returns a rating with its instrument.
func (s *calificacionService) GetCalificacionByID(id uint) (*models.Calificacion, error) {
	var cal models.Calificacion
	if err := s.db.Preload("Instrumento").First(&cal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCalificacionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cal, nil
}

// ListCalificaciones returns the ratings matching every given filter,
// newest first.
func (s *calificacionService) ListCalificaciones(filter CalificacionFilter) ([]models.Calificacion, error) {
	query := s.db.Model(&models.Calificacion{}).Preload("Instrumento")

	if id, ok := parseCalificacionCodigo(filter.Codigo); ok {
		query = query.Where("id = ?", id)
	}
	if filter.Tipo != "" {
		query = query.Where("tipo = ?", filter.Tipo)
	}
	if filter.Estado != "" {
		query = query.Where("estado = ?", filter.Estado)
	}
	if filter.FechaDesde != nil {
		query = query.Where("fecha >= ?", models.DateOnly(*filter.FechaDesde))
	}
	if filter.FechaHasta != nil {
		query = query.Where("fecha <= ?", models.DateOnly(*filter.FechaHasta))
	}

	var calificaciones []models.Calificacion
	if err := query.Order("fecha DESC, id DESC").Find(&calificaciones).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return calificaciones, nil
}

// UpdateCalificacion overwrites every writable field.
func (s *calificacionService) UpdateCalificacion(id uint, input CalificacionInput) (*models.Calificacion, error) {
	var cal models.Calificacion
	if err := s.db.First(&cal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCalificacionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.apply(&cal, input); err != nil {
		return nil, err
	}
	if err := s.db.Model(&cal).Select(calificacionUpdatable).Omit("Instrumento").Updates(&cal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cal, nil
}

// DeleteCalificacion hard-deletes a rating.
func (s *calificacionService) DeleteCalificacion(id uint) error {
	result := s.db.Delete(&models.Calificacion{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCalificacionNotFound
	}
	return nil
}

// apply validates input and copies it onto cal, loading the instrument.
func (s *calificacionService) apply(cal *models.Calificacion, input CalificacionInput) error {
	if !input.Tipo.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Tipo de calificación inválido.")
	}
	estado := input.Estado
	if estado == "" {
		estado = models.CalificacionActiva
	}
	if !estado.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Estado de calificación inválido.")
	}
	if input.Fecha.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "La fecha es obligatoria.")
	}

	var inst models.Instrumento
	if err := s.db.First(&inst, input.InstrumentoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInstrumentoNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monto := input.Monto
	if monto.Valid {
		monto.Decimal = monto.Decimal.Round(2)
	}

	cal.InstrumentoID = inst.ID
	cal.Instrumento = &inst
	cal.Tipo = input.Tipo
	cal.Estado = estado
	cal.Fecha = models.DateOnly(input.Fecha)
	cal.Monto = monto
	return nil
}

// parseCalificacionCodigo accepts "CAL-12" or "12".
func parseCalificacionCodigo(codigo string) (uint64, bool) {
	codigo = strings.TrimSpace(codigo)
	if len(codigo) >= len(models.CodigoPrefix) && strings.EqualFold(codigo[:len(models.CodigoPrefix)], models.CodigoPrefix) {
		codigo = codigo[len(models.CodigoPrefix):]
	}
	if codigo == "" {
		return 0, false
	}
	for _, r := range codigo {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseUint(codigo, 10, 64)
	return id, err == nil
}
