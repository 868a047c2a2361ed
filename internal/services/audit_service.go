package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"spendwise/internal/logger"
	"spendwise/internal/metrics"
	"spendwise/internal/models"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService returns an AuditServicer that appends to audit_logs.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// encodeChanges renders the change set stored with an audit entry. Nil means
// no change set; an unencodable one is kept as "{}" so the entry survives.
func encodeChanges(changes map[string]interface{}) (string, error) {
	if changes == nil {
		return "", nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// Log appends an audit entry. It never fails the caller: problems are logged
// and counted.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.ForUser(userID).With("action", action, "resource_type", resourceType, "resource_id", resourceID)

	encoded, err := encodeChanges(changes)
	if err != nil {
		log.Warnw("audit changes not encodable", "error", err)
	}

	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encoded,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		metrics.AuditWriteFailures.Inc()
		log.Errorw("audit entry dropped", "error", err)
	}
}
