package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"appointment-scheduler/internal/appointment/model"
	"appointment-scheduler/internal/database"
	appErrors "appointment-scheduler/pkg/errors"
)

type AppointmentRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *model.Appointment) error {
	appointment.CreatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		// The partial unique index on (user_id, date, time) for scheduled
		// rows closes the check-then-create race under concurrency.
		if isUniqueViolation(err) {
			return appErrors.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// GetOwnedByID resolves an appointment scoped to its owner. A foreign or
// missing id is reported identically as not found.
func (r *AppointmentRepository) GetOwnedByID(ctx context.Context, ownerID, appointmentID uint) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", appointmentID, ownerID).
		First(&appointment).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment *model.Appointment) error {
	result := r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ? AND user_id = ?", appointment.ID, appointment.UserID).
		Updates(map[string]interface{}{
			"title":          appointment.Title,
			"description":    appointment.Description,
			"date":           appointment.Date,
			"time":           appointment.Time,
			"duration":       appointment.Duration,
			"customer_name":  appointment.CustomerName,
			"customer_email": appointment.CustomerEmail,
			"status":         appointment.Status,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return appErrors.ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return appErrors.ErrAppointmentNotFound
	}

	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, ownerID, appointmentID uint, status model.Status) error {
	result := r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ? AND user_id = ?", appointmentID, ownerID).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return appErrors.ErrAppointmentNotFound
	}

	return nil
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, ownerID, appointmentID uint) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", appointmentID, ownerID).
		Delete(&model.Appointment{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return appErrors.ErrAppointmentNotFound
	}

	return nil
}

// HasScheduledAt reports whether the owner already has a scheduled
// appointment at the given date and time.
func (r *AppointmentRepository) HasScheduledAt(ctx context.Context, ownerID uint, date, clock string) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Where("user_id = ? AND date = ? AND time = ? AND status = ?",
			ownerID, date, clock, model.StatusScheduled).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}

	return count > 0, nil
}

// ListAppointments composes the owner-scoped filter predicate, counts the
// unpaginated match set and returns one page ordered by date then time,
// most recent first.
func (r *AppointmentRepository) ListAppointments(ctx context.Context, ownerID uint, filter *model.FilterRequest) ([]model.Appointment, int64, error) {
	var appointments []model.Appointment
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Where("user_id = ?", ownerID)

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where(
			"LOWER(title) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(description) LIKE ?",
			search, search, search, search,
		)
	}
	if filter.Status != "" && filter.Status != "all" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		db = db.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		db = db.Where("date <= ?", filter.EndDate)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage

	err := db.Order("date DESC, time DESC").
		Limit(filter.PerPage).
		Offset(offset).
		Find(&appointments).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, total, nil
}

// BulkUpdateStatus applies the status to every listed appointment owned by
// the caller, atomically as a unit. Foreign and missing ids simply do not
// match the predicate and are dropped.
func (r *AppointmentRepository) BulkUpdateStatus(ctx context.Context, ownerID uint, appointmentIDs []uint, status model.Status) (int64, error) {
	var affected int64

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Appointment{}).
			Where("user_id = ? AND id IN ?", ownerID, appointmentIDs).
			Update("status", status)

		if result.Error != nil {
			return result.Error
		}

		affected = result.RowsAffected
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to bulk update status: %w", err)
	}

	return affected, nil
}

// BulkDelete removes every listed appointment owned by the caller,
// atomically as a unit.
func (r *AppointmentRepository) BulkDelete(ctx context.Context, ownerID uint, appointmentIDs []uint) (int64, error) {
	var affected int64

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND id IN ?", ownerID, appointmentIDs).
			Delete(&model.Appointment{})

		if result.Error != nil {
			return result.Error
		}

		affected = result.RowsAffected
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete: %w", err)
	}

	return affected, nil
}

// GetStats recomputes owner-scoped counts per status plus the number of
// scheduled appointments on the given day.
func (r *AppointmentRepository) GetStats(ctx context.Context, ownerID uint, today string) (*model.AppointmentStats, error) {
	stats := &model.AppointmentStats{}

	rows := []struct {
		Status model.Status
		Count  int64
	}{}

	err := r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statuses: %w", err)
	}

	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case model.StatusScheduled:
			stats.Scheduled = row.Count
		case model.StatusCancelled:
			stats.Cancelled = row.Count
		case model.StatusCompleted:
			stats.Completed = row.Count
		}
	}

	err = r.db.DB.WithContext(ctx).Model(&model.Appointment{}).
		Where("user_id = ? AND status = ? AND date = ?",
			ownerID, model.StatusScheduled, today).
		Count(&stats.Today).Error

	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	return stats, nil
}

func isUniqueViolation(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint")
}
