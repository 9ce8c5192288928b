package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointment-scheduler/internal/database"
	"appointment-scheduler/internal/user/model"
	appErrors "appointment-scheduler/pkg/errors"
)

type SessionRepository struct {
	db *database.Database
}

func NewSessionRepository(db *database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID uint, ttl time.Duration) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}

	if err := r.db.DB.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	var session model.Session
	err := r.db.DB.WithContext(ctx).First(&session, "id = ?", sessionID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Revoked {
		return nil, appErrors.ErrInvalidToken
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, appErrors.ErrTokenExpired
	}

	return &session, nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, sessionID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true)

	if result.Error != nil {
		return fmt.Errorf("failed to revoke session: %w", result.Error)
	}

	return nil
}

func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.Session{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}
