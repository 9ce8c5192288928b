package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointment-scheduler/internal/config"
	"appointment-scheduler/internal/user/repository"
	appErrors "appointment-scheduler/pkg/errors"
	"appointment-scheduler/pkg/utils"
)

const (
	UserIDKey         = "userID"
	AccessTokenCookie = "access_token"
	SessionIDCookie   = "session_id"
)

// AuthMiddleware resolves the caller identity from one of three carriers, in
// fixed precedence order: Authorization header, access token cookie, then the
// server-side session referenced by the session cookie. The first non-empty
// carrier wins; resolution is read-only.
func AuthMiddleware(cfg *config.Config, users *repository.UserRepository, sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolveIdentity(c, cfg, sessions)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, appErrors.ErrUserNotFound) {
				abortWithAuthError(c, appErrors.ErrInvalidToken)
				return
			}
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}

		if !user.IsActive {
			abortWithAuthError(c, appErrors.ErrUserInactive)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, cfg *config.Config, sessions *repository.SessionRepository) (uint, error) {
	if token := bearerToken(c); token != "" {
		return validateAccessToken(token, cfg)
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return validateAccessToken(cookie, cfg)
	}

	if cookie, err := c.Cookie(SessionIDCookie); err == nil && cookie != "" {
		sessionID, err := uuid.Parse(cookie)
		if err != nil {
			return 0, appErrors.ErrInvalidToken
		}

		session, err := sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			return 0, err
		}
		return session.UserID, nil
	}

	return 0, appErrors.ErrMissingCredential
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func validateAccessToken(token string, cfg *config.Config) (uint, error) {
	claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func abortWithAuthError(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, appErrors.ErrUserInactive) {
		status = http.StatusForbidden
	}

	utils.ErrorResponse(c, status, err.Error())
	c.Abort()
}

// CurrentUserID returns the identity resolved by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint)
	return userID, ok
}
