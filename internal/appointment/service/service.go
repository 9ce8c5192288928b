package service

import (
	"context"
	"math"
	"time"

	"appointment-scheduler/internal/appointment/lifecycle"
	"appointment-scheduler/internal/appointment/model"
	"appointment-scheduler/internal/appointment/repository"
	"appointment-scheduler/internal/appointment/validator"
	appErrors "appointment-scheduler/pkg/errors"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	defaultMinutes = 60
)

type AppointmentService struct {
	repo *repository.AppointmentRepository
}

func NewService(repo *repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// CreateAppointment persists a new appointment for the caller. Status and
// ownership are forced server-side regardless of anything in the request.
func (s *AppointmentService) CreateAppointment(ctx context.Context, ownerID uint, request *model.CreateAppointmentRequest) (*model.AppointmentResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	taken, err := s.repo.HasScheduledAt(ctx, ownerID, request.Date, request.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErrors.ErrSlotTaken
	}

	duration := request.Duration
	if duration == 0 {
		duration = defaultMinutes
	}

	appointment := &model.Appointment{
		UserID:        ownerID,
		Title:         request.Title,
		Description:   request.Description,
		Date:          request.Date,
		Time:          request.Time,
		Duration:      duration,
		CustomerName:  request.CustomerName,
		CustomerEmail: request.CustomerEmail,
		Status:        model.StatusScheduled,
	}

	if err := s.repo.CreateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment.ToResponse(), nil
}

// UpdateAppointment applies partial-update semantics: only fields present in
// the request are touched. Status changes must follow the lifecycle.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, ownerID, appointmentID uint, request *model.UpdateAppointmentRequest) (*model.AppointmentResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	appointment, err := s.repo.GetOwnedByID(ctx, ownerID, appointmentID)
	if err != nil {
		return nil, err
	}

	if request.Status != nil {
		if err := lifecycle.ValidateStatusTransition(appointment.Status, *request.Status); err != nil {
			return nil, err
		}
		appointment.Status = *request.Status
	}
	if request.Title != nil {
		appointment.Title = *request.Title
	}
	if request.Description != nil {
		appointment.Description = *request.Description
	}
	if request.Date != nil {
		appointment.Date = *request.Date
	}
	if request.Time != nil {
		appointment.Time = *request.Time
	}
	if request.Duration != nil {
		appointment.Duration = *request.Duration
	}
	if request.CustomerName != nil {
		appointment.CustomerName = *request.CustomerName
	}
	if request.CustomerEmail != nil {
		appointment.CustomerEmail = *request.CustomerEmail
	}

	if err := s.repo.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment.ToResponse(), nil
}

// CancelAppointment sets the status to cancelled regardless of current
// state; cancelling an already-cancelled appointment succeeds silently.
func (s *AppointmentService) CancelAppointment(ctx context.Context, ownerID, appointmentID uint) (*model.AppointmentResponse, error) {
	return s.setStatus(ctx, ownerID, appointmentID, model.StatusCancelled)
}

// CompleteAppointment sets the status to completed regardless of current
// state, mirroring CancelAppointment.
func (s *AppointmentService) CompleteAppointment(ctx context.Context, ownerID, appointmentID uint) (*model.AppointmentResponse, error) {
	return s.setStatus(ctx, ownerID, appointmentID, model.StatusCompleted)
}

func (s *AppointmentService) setStatus(ctx context.Context, ownerID, appointmentID uint, status model.Status) (*model.AppointmentResponse, error) {
	appointment, err := s.repo.GetOwnedByID(ctx, ownerID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, appointmentID, status); err != nil {
		return nil, err
	}

	appointment.Status = status
	return appointment.ToResponse(), nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, ownerID, appointmentID uint) error {
	return s.repo.DeleteAppointment(ctx, ownerID, appointmentID)
}

// ListAppointments returns one page of the caller's appointments matching
// the filter, along with pagination metadata computed over the full match
// set.
func (s *AppointmentService) ListAppointments(ctx context.Context, ownerID uint, filter *model.FilterRequest) (*model.AppointmentListResponse, error) {
	if err := validator.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	if filter.Page == 0 {
		filter.Page = defaultPage
	}
	if filter.PerPage == 0 {
		filter.PerPage = defaultPerPage
	}

	appointments, total, err := s.repo.ListAppointments(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]model.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *appointment.ToResponse()
	}

	return &model.AppointmentListResponse{
		Appointments: responses,
		Total:        total,
		Page:         filter.Page,
		PerPage:      filter.PerPage,
		TotalPages:   int(math.Ceil(float64(total) / float64(filter.PerPage))),
	}, nil
}

// BulkAction applies cancel or delete to the owned-and-existing subset of
// the requested ids. Ids outside the caller's ownership are silently
// dropped; an empty resolved subset is not found.
func (s *AppointmentService) BulkAction(ctx context.Context, ownerID uint, request *model.BulkActionRequest) (*model.BulkActionResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	var affected int64
	var err error

	switch request.Action {
	case "cancel":
		affected, err = s.repo.BulkUpdateStatus(ctx, ownerID, request.AppointmentIDs, model.StatusCancelled)
	case "delete":
		affected, err = s.repo.BulkDelete(ctx, ownerID, request.AppointmentIDs)
	}

	if err != nil {
		return nil, err
	}

	if affected == 0 {
		return nil, appErrors.ErrAppointmentNotFound
	}

	return &model.BulkActionResponse{
		Action:        request.Action,
		AffectedCount: affected,
	}, nil
}

// GetStats derives per-status counts and the number of scheduled
// appointments on the server's current local day.
func (s *AppointmentService) GetStats(ctx context.Context, ownerID uint) (*model.AppointmentStats, error) {
	today := time.Now().Format("2006-01-02")
	return s.repo.GetStats(ctx, ownerID, today)
}
