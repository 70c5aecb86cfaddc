package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/models"
)

// instrumentoUpdatable lists the columns written on update, so nil dates clear the column.
var instrumentoUpdatable = []string{"codigo", "nombre", "tipo", "mercado", "estado", "fecha_emision", "fecha_vencimiento"}

// instrumentoService handles instrument-related business logic.
type instrumentoService struct {
	db *gorm.DB
}

// NewInstrumentoService creates a new InstrumentoServicer.
func NewInstrumentoService(db *gorm.DB) InstrumentoServicer {
	return &instrumentoService{db: db}
}

// CreateInstrumento creates an instrument. Estado defaults to ACTIVO.
func (s *instrumentoService) CreateInstrumento(input InstrumentoInput) (*models.Instrumento, error) {
	inst := &models.Instrumento{}
	if err := applyInstrumentoInput(inst, input); err != nil {
		return nil, err
	}

	if err := s.ensureCodigoAvailable(inst.Codigo, 0); err != nil {
		return nil, err
	}

	if err := s.db.Create(inst).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateCodigo
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inst, nil
}

// GetInstrumentoByID returns an instrument with its ratings, newest first.
func (s *instrumentoService) GetInstrumentoByID(id uint) (*models.Instrumento, error) {
	var inst models.Instrumento
	err := s.db.Preload("Calificaciones", func(db *gorm.DB) *gorm.DB {
		return db.Order("fecha DESC, id DESC")
	}).First(&inst, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstrumentoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inst, nil
}

// ListInstrumentos returns the instruments matching every given filter,
// ordered by codigo. Q matches codigo or nombre, case-insensitively.
func (s *instrumentoService) ListInstrumentos(filter InstrumentoFilter) ([]models.Instrumento, error) {
	query := s.db.Model(&models.Instrumento{})

	if q := strings.TrimSpace(filter.Q); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where("(LOWER(codigo) LIKE ? ESCAPE '\\' OR LOWER(nombre) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if filter.Tipo != "" {
		query = query.Where("tipo = ?", filter.Tipo)
	}
	if filter.Mercado != "" {
		query = query.Where("mercado = ?", filter.Mercado)
	}
	if filter.Estado != "" {
		query = query.Where("estado = ?", filter.Estado)
	}

	var instrumentos []models.Instrumento
	if err := query.Order("codigo ASC").Find(&instrumentos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return instrumentos, nil
}

// UpdateInstrumento overwrites every writable field.
func (s *instrumentoService) UpdateInstrumento(id uint, input InstrumentoInput) (*models.Instrumento, error) {
	var inst models.Instrumento
	if err := s.db.First(&inst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstrumentoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := applyInstrumentoInput(&inst, input); err != nil {
		return nil, err
	}
	if err := s.ensureCodigoAvailable(inst.Codigo, inst.ID); err != nil {
		return nil, err
	}

	if err := s.db.Model(&inst).Select(instrumentoUpdatable).Updates(&inst).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateCodigo
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inst, nil
}

// DeleteInstrumento hard-deletes an instrument and its ratings.
func (s *instrumentoService) DeleteInstrumento(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inst models.Instrumento
		if err := tx.First(&inst, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInstrumentoNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("instrumento_id = ?", inst.ID).Delete(&models.Calificacion{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&inst).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ensureCodigoAvailable fails when another instrument already uses codigo.
func (s *instrumentoService) ensureCodigoAvailable(codigo string, exceptID uint) error {
	var count int64
	if err := s.db.Model(&models.Instrumento{}).
		Where("codigo = ? AND id <> ?", codigo, exceptID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCodigo
	}
	return nil
}

func applyInstrumentoInput(inst *models.Instrumento, input InstrumentoInput) error {
	codigo := strings.TrimSpace(input.Codigo)
	nombre := strings.TrimSpace(input.Nombre)
	if codigo == "" || nombre == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Código y nombre son obligatorios.")
	}
	if !input.Tipo.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Tipo de instrumento inválido.")
	}
	if !input.Mercado.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Mercado inválido.")
	}
	estado := input.Estado
	if estado == "" {
		estado = models.InstrumentoActivo
	}
	if !estado.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Estado de instrumento inválido.")
	}

	inst.Codigo = codigo
	inst.Nombre = nombre
	inst.Tipo = input.Tipo
	inst.Mercado = input.Mercado
	inst.Estado = estado
	inst.FechaEmision = input.FechaEmision
	inst.FechaVencimiento = input.FechaVencimiento
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
