package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"appointment-scheduler/internal/logger"
)

// StartSessionCleanupJob periodically deletes expired session rows until the
// context is cancelled. It runs one sweep immediately so a restart does not
// wait a full interval to reclaim space.
func (s *UserService) StartSessionCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Session cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpiredSessions(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredSessions(ctx)
		}
	}
}

func (s *UserService) cleanupExpiredSessions(ctx context.Context) {
	deleted, err := s.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		logger.Error("Failed to delete expired sessions", zap.Error(err))
		return
	}

	if deleted > 0 {
		logger.Debug("Expired sessions cleaned up",
			zap.Int64("deleted", deleted),
		)
	}
}
