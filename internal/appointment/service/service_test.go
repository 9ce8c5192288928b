package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"appointment-scheduler/internal/appointment/model"
	"appointment-scheduler/internal/appointment/repository"
	"appointment-scheduler/internal/database"
	usermodel "appointment-scheduler/internal/user/model"
	appErrors "appointment-scheduler/pkg/errors"
)

func setupService(t *testing.T) (*AppointmentService, *database.Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	wrapped := &database.Database{DB: db}
	return NewService(repository.NewRepository(wrapped)), wrapped
}

func createUser(t *testing.T, db *database.Database, email string) *usermodel.User {
	t.Helper()

	user := &usermodel.User{
		Username:       email,
		Email:          email,
		PasswordHashed: "irrelevant",
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func validCreateRequest(date, clock string) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		Title:         "Consult",
		Date:          date,
		Time:          clock,
		CustomerName:  "A",
		CustomerEmail: "a@x.com",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	ctx := context.Background()

	t.Run("forces scheduled status and caller ownership", func(t *testing.T) {
		created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "10:00"))
		require.NoError(t, err)
		assert.Equal(t, model.StatusScheduled, created.Status)
		assert.Equal(t, 60, created.Duration)

		var stored model.Appointment
		require.NoError(t, db.DB.First(&stored, created.ID).Error)
		assert.Equal(t, owner.ID, stored.UserID)
	})

	t.Run("identical slot conflicts while first stays scheduled", func(t *testing.T) {
		_, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "10:00"))
		require.ErrorIs(t, err, appErrors.ErrSlotTaken)
	})

	t.Run("slot frees up once the blocker is cancelled", func(t *testing.T) {
		created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-02", "09:00"))
		require.NoError(t, err)

		_, err = svc.CancelAppointment(ctx, owner.ID, created.ID)
		require.NoError(t, err)

		_, err = svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-02", "09:00"))
		require.NoError(t, err)
	})

	t.Run("another owner can book the same slot", func(t *testing.T) {
		other := createUser(t, db, "other@example.com")
		_, err := svc.CreateAppointment(ctx, other.ID, validCreateRequest("2024-06-01", "10:00"))
		require.NoError(t, err)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		req := validCreateRequest("2024-06-03", "10:00")
		req.CustomerName = ""
		_, err := svc.CreateAppointment(ctx, owner.ID, req)

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("customer email without at sign is rejected", func(t *testing.T) {
		req := validCreateRequest("2024-06-03", "10:00")
		req.CustomerEmail = "not-an-email"
		_, err := svc.CreateAppointment(ctx, owner.ID, req)
		require.Error(t, err)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		req := validCreateRequest("01/06/2024", "10:00")
		_, err := svc.CreateAppointment(ctx, owner.ID, req)
		require.Error(t, err)
	})
}

func TestUpdateAppointment(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "10:00"))
	require.NoError(t, err)

	t.Run("applies only the fields present", func(t *testing.T) {
		title := "Follow-up"
		updated, err := svc.UpdateAppointment(ctx, owner.ID, created.ID, &model.UpdateAppointmentRequest{
			Title: &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "Follow-up", updated.Title)
		assert.Equal(t, "2024-06-01", updated.Date)
		assert.Equal(t, "A", updated.CustomerName)
	})

	t.Run("foreign appointment reports not found", func(t *testing.T) {
		title := "hijack"
		_, err := svc.UpdateAppointment(ctx, stranger.ID, created.ID, &model.UpdateAppointmentRequest{
			Title: &title,
		})
		require.ErrorIs(t, err, appErrors.ErrAppointmentNotFound)
	})

	t.Run("status follows the lifecycle", func(t *testing.T) {
		completed := model.StatusCompleted
		updated, err := svc.UpdateAppointment(ctx, owner.ID, created.ID, &model.UpdateAppointmentRequest{
			Status: &completed,
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, updated.Status)

		scheduled := model.StatusScheduled
		_, err = svc.UpdateAppointment(ctx, owner.ID, created.ID, &model.UpdateAppointmentRequest{
			Status: &scheduled,
		})

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
	})

	t.Run("status outside the defined set is rejected", func(t *testing.T) {
		bogus := model.Status("pending")
		_, err := svc.UpdateAppointment(ctx, owner.ID, created.ID, &model.UpdateAppointmentRequest{
			Status: &bogus,
		})
		require.Error(t, err)
	})
}

func TestCancelAndComplete(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "10:00"))
	require.NoError(t, err)

	t.Run("cancel is idempotent", func(t *testing.T) {
		cancelled, err := svc.CancelAppointment(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)

		cancelled, err = svc.CancelAppointment(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)
	})

	t.Run("complete overrides unconditionally and is idempotent", func(t *testing.T) {
		completed, err := svc.CompleteAppointment(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, completed.Status)

		completed, err = svc.CompleteAppointment(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, completed.Status)
	})

	t.Run("foreign appointment reports not found", func(t *testing.T) {
		_, err := svc.CancelAppointment(ctx, stranger.ID, created.ID)
		require.ErrorIs(t, err, appErrors.ErrAppointmentNotFound)

		_, err = svc.CompleteAppointment(ctx, stranger.ID, created.ID)
		require.ErrorIs(t, err, appErrors.ErrAppointmentNotFound)
	})
}

func TestDeleteAppointment(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "10:00"))
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteAppointment(ctx, stranger.ID, created.ID), appErrors.ErrAppointmentNotFound)

	require.NoError(t, svc.DeleteAppointment(ctx, owner.ID, created.ID))
	require.ErrorIs(t, svc.DeleteAppointment(ctx, owner.ID, created.ID), appErrors.ErrAppointmentNotFound)
}

func TestListAppointments(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	seed := []struct {
		date, clock, title, customer string
	}{
		{"2024-06-01", "09:00", "Checkup", "Alice"},
		{"2024-06-01", "14:00", "Consult", "Bob"},
		{"2024-06-02", "10:00", "Review", "Carol"},
		{"2024-06-03", "08:00", "Consult", "Dave"},
		{"2024-06-03", "16:00", "Intake", "Erin"},
		{"2024-06-05", "11:00", "Checkup", "Frank"},
		{"2024-06-07", "13:00", "Surgery prep", "Grace"},
	}
	for _, s := range seed {
		req := validCreateRequest(s.date, s.clock)
		req.Title = s.title
		req.CustomerName = s.customer
		_, err := svc.CreateAppointment(ctx, owner.ID, req)
		require.NoError(t, err)
	}

	// One foreign appointment that must never surface.
	_, err := svc.CreateAppointment(ctx, stranger.ID, validCreateRequest("2024-06-01", "09:00"))
	require.NoError(t, err)

	t.Run("defaults return everything owned, newest first", func(t *testing.T) {
		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(7), list.Total)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 10, list.PerPage)
		assert.Equal(t, 1, list.TotalPages)
		require.Len(t, list.Appointments, 7)

		for i := 1; i < len(list.Appointments); i++ {
			prev := list.Appointments[i-1]
			curr := list.Appointments[i]
			ordered := prev.Date > curr.Date ||
				(prev.Date == curr.Date && prev.Time >= curr.Time)
			assert.True(t, ordered, "expected (%s %s) before (%s %s)",
				prev.Date, prev.Time, curr.Date, curr.Time)
		}
	})

	t.Run("search matches title and customer fields case-insensitively", func(t *testing.T) {
		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Search: "consult"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)

		list, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Search: "ALICE"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.Total)

		list, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Search: "a@x.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), list.Total)
	})

	t.Run("status all is a no-op filter", func(t *testing.T) {
		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Status: "all"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), list.Total)
	})

	t.Run("status filter applies after a cancellation", func(t *testing.T) {
		all, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{})
		require.NoError(t, err)
		_, err = svc.CancelAppointment(ctx, owner.ID, all.Appointments[0].ID)
		require.NoError(t, err)

		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.Total)

		list, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Status: "scheduled"})
		require.NoError(t, err)
		assert.Equal(t, int64(6), list.Total)
	})

	t.Run("date bounds are inclusive and independent", func(t *testing.T) {
		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{
			StartDate: "2024-06-02",
			EndDate:   "2024-06-05",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), list.Total)

		list, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{StartDate: "2024-06-05"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)

		list, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{EndDate: "2024-06-01"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
	})

	t.Run("pages partition the full match set", func(t *testing.T) {
		seen := make(map[uint]bool)
		var total int64

		for page := 1; ; page++ {
			list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{
				Page:    page,
				PerPage: 3,
			})
			require.NoError(t, err)
			assert.Equal(t, 3, list.TotalPages)
			total = list.Total

			for _, a := range list.Appointments {
				assert.False(t, seen[a.ID], "appointment %d returned twice", a.ID)
				seen[a.ID] = true
			}

			if page >= list.TotalPages {
				break
			}
			require.Len(t, list.Appointments, 3)
		}

		assert.Equal(t, total, int64(len(seen)))
	})

	t.Run("non-positive pagination values are rejected", func(t *testing.T) {
		_, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Page: -1})
		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

		_, err = svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{PerPage: -5})
		require.Error(t, err)
	})

	t.Run("unknown status value is rejected", func(t *testing.T) {
		_, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{Status: "pending"})
		require.Error(t, err)
	})
}

func TestBulkAction(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	var ownedIDs []uint
	for i := 0; i < 3; i++ {
		created, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", fmt.Sprintf("0%d:00", i+1)))
		require.NoError(t, err)
		ownedIDs = append(ownedIDs, created.ID)
	}

	foreign, err := svc.CreateAppointment(ctx, stranger.ID, validCreateRequest("2024-06-01", "01:00"))
	require.NoError(t, err)

	t.Run("mixed list affects only the owned-and-existing subset", func(t *testing.T) {
		result, err := svc.BulkAction(ctx, owner.ID, &model.BulkActionRequest{
			AppointmentIDs: []uint{ownedIDs[0], ownedIDs[1], foreign.ID, 99999},
			Action:         "cancel",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.AffectedCount)

		var untouched model.Appointment
		require.NoError(t, db.DB.First(&untouched, foreign.ID).Error)
		assert.Equal(t, model.StatusScheduled, untouched.Status)
	})

	t.Run("empty resolved subset reports not found", func(t *testing.T) {
		_, err := svc.BulkAction(ctx, owner.ID, &model.BulkActionRequest{
			AppointmentIDs: []uint{foreign.ID, 99999},
			Action:         "delete",
		})
		require.ErrorIs(t, err, appErrors.ErrAppointmentNotFound)
	})

	t.Run("bulk delete removes the subset", func(t *testing.T) {
		result, err := svc.BulkAction(ctx, owner.ID, &model.BulkActionRequest{
			AppointmentIDs: ownedIDs,
			Action:         "delete",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.AffectedCount)

		list, err := svc.ListAppointments(ctx, owner.ID, &model.FilterRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), list.Total)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		_, err := svc.BulkAction(ctx, owner.ID, &model.BulkActionRequest{
			AppointmentIDs: []uint{1},
			Action:         "archive",
		})

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestGetStats(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	ctx := context.Background()

	today := time.Now().Format("2006-01-02")

	first, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest(today, "10:00"))
	require.NoError(t, err)
	_, err = svc.CreateAppointment(ctx, owner.ID, validCreateRequest(today, "11:00"))
	require.NoError(t, err)
	done, err := svc.CreateAppointment(ctx, owner.ID, validCreateRequest("2024-06-01", "09:00"))
	require.NoError(t, err)

	_, err = svc.CompleteAppointment(ctx, owner.ID, done.ID)
	require.NoError(t, err)
	_, err = svc.CancelAppointment(ctx, owner.ID, first.ID)
	require.NoError(t, err)

	// Foreign data must not leak into the aggregate.
	_, err = svc.CreateAppointment(ctx, stranger.ID, validCreateRequest(today, "10:00"))
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Today)
}
