// internal/domain/audit/service.go
package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service records and lists audit events. Recording is best-effort: a
// failed insert is logged and swallowed so auditing never breaks the
// operation it describes.
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new audit service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// Record writes one audit entry. userID may be nil for anonymous events
// such as failed logins.
func (s *Service) Record(userID *uint, action, format string, args ...interface{}) {
	entry := Entry{
		UserID:      userID,
		Action:      action,
		Description: fmt.Sprintf(format, args...),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("failed to record audit entry")
	}
}

// RecordFor is Record for a known user ID
func (s *Service) RecordFor(userID uint, action, format string, args ...interface{}) {
	s.Record(&userID, action, format, args...)
}

// List retrieves audit entries joined with usernames, newest first,
// capped at limit
func (s *Service) List(limit int) ([]EntryView, error) {
	if limit <= 0 {
		limit = 100
	}

	var views []EntryView
	err := s.db.Table("audit_logs a").
		Select(`a.id, a.user_id, COALESCE(u.username, '') AS username,
			a.action, a.description, a.created_at`).
		Joins("LEFT JOIN users u ON u.id = a.user_id").
		Order("a.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Internal("failed to list audit entries", err)
	}
	return views, nil
}
