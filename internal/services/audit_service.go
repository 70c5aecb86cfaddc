package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/logger"
	"nuam/internal/models"
)

// Audit actions.
const (
	AuditSignup               = "SIGNUP"
	AuditLogin                = "LOGIN"
	AuditCreateInstrumento    = "CREATE_INSTRUMENTO"
	AuditUpdateInstrumento    = "UPDATE_INSTRUMENTO"
	AuditDeleteInstrumento    = "DELETE_INSTRUMENTO"
	AuditCreateCalificacion   = "CREATE_CALIFICACION"
	AuditUpdateCalificacion   = "UPDATE_CALIFICACION"
	AuditDeleteCalificacion   = "DELETE_CALIFICACION"
	AuditImportInstrumentos   = "IMPORT_INSTRUMENTOS"
	AuditImportCalificaciones = "IMPORT_CALIFICACIONES"
	AuditCreateColaborador    = "CREATE_COLABORADOR"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// Recent returns the latest entries, newest first.
func (s *auditService) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.AuditLog
	if err := s.db.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
