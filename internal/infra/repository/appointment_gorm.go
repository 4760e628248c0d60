package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
)

// ActiveSlotIndex backs the one-scheduled-appointment-per-slot rule.
const ActiveSlotIndex = "idx_appointments_active_slot"

const pgUniqueViolation = "23505"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// EnsureActiveSlotIndex creates the partial unique index that closes the race
// between the availability check and the insert.
func EnsureActiveSlotIndex(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS %s
		ON appointments (appointment_date, appointment_time)
		WHERE status = '%s'
	`, ActiveSlotIndex, domain.StatusScheduled)).Error
}

func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == ActiveSlotIndex
	}
	return false
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByDateRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
	statuses ...domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "appointment_date", "appointment_time", "status").
		Where("appointment_date >= ? AND appointment_date < ?", start, end)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var apps []models.Appointment
	if err := q.Order("appointment_date ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("find appointments by date: %w", err)
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Appointment, error) {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isSlotConflict(err) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return ap, nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateByID(
	ctx context.Context,
	id uuid.UUID,
	patch domain.Patch,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id)
	if patch.From != nil {
		q = q.Where("status = ?", string(*patch.From))
	}

	res := q.Updates(patchColumns(patch))
	if res.Error != nil {
		if isSlotConflict(res.Error) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		return nil, fmt.Errorf("update appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if patch.From == nil {
			return nil, nil
		}
		// Either the row is gone or its status moved since it was read.
		current, err := r.FindByID(ctx, id)
		if err != nil || current == nil {
			return nil, err
		}
		return nil, httperr.ErrConflict("status_changed")
	}

	return r.FindByID(ctx, id)
}

func patchColumns(p domain.Patch) map[string]any {
	cols := map[string]any{"updated_at": time.Now()}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.Technician != nil {
		cols["technician"] = nullable(*p.Technician)
	}
	if p.Cost != nil {
		cols["cost"] = nullable(*p.Cost)
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.AdditionalNotes != nil {
		cols["additional_notes"] = *p.AdditionalNotes
	}
	if p.CompletedAt != nil {
		cols["completed_at"] = *p.CompletedAt
	}
	if p.CancelledAt != nil {
		cols["cancelled_at"] = *p.CancelledAt
	}
	return cols
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) Count(
	ctx context.Context,
	filter domain.ListFilter,
) (int64, error) {

	var total int64
	q := applyFilter(r.db.WithContext(ctx).Model(&models.Appointment{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return total, nil
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
	page int,
	limit int,
	sort domain.Sort,
) ([]models.Appointment, error) {

	order := "appointment_date DESC, created_at DESC"
	if sort == domain.SortDateAsc {
		order = "appointment_date ASC, created_at ASC"
	}

	var apps []models.Appointment
	if err := applyFilter(r.db.WithContext(ctx), filter).
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

func applyFilter(q *gorm.DB, f domain.ListFilter) *gorm.DB {
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(f.Statuses))
	}
	if f.From != nil {
		q = q.Where("appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("appointment_date < ?", *f.To)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(vehicle_make) LIKE ? OR LOWER(vehicle_model) LIKE ? OR CAST(vehicle_year AS TEXT) LIKE ? "+
				"OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ? OR LOWER(customer_email) LIKE ?",
			like, like, like, like, like, like,
		)
	}
	return q
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
