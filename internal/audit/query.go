package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// Query filters the audit trail. From is inclusive, To exclusive.
type Query struct {
	Action   string
	Entity   string
	EntityID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// List returns one page of audit rows, newest first, plus the total match count.
func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	db := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityID != "" {
		db = db.Where("entity_id = ?", q.EntityID)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}

	return logs, total, nil
}
