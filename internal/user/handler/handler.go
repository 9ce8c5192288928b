package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-scheduler/internal/config"
	"appointment-scheduler/internal/logger"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/user/model"
	"appointment-scheduler/internal/user/service"
	appErrors "appointment-scheduler/pkg/errors"
	"appointment-scheduler/pkg/utils"
)

type UserHandler struct {
	service *service.UserService
	config  *config.Config
}

func NewHandler(service *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, config: cfg}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/refresh", h.RefreshToken)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var request model.RegisterRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)
	request.Username = utils.SanitizeString(request.Username)
	request.FullName = utils.SanitizeString(request.FullName)
	if request.Phone != nil {
		sanitized := utils.SanitizePhone(*request.Phone)
		request.Phone = &sanitized
	}

	authResponse, err := h.service.Register(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setAuthCookies(c, authResponse)
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", authResponse)
}

func (h *UserHandler) Login(c *gin.Context) {
	var request model.LoginRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Email = utils.SanitizeEmail(request.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setAuthCookies(c, authResponse)
	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func (h *UserHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionIDCookie); err == nil && cookie != "" {
		sessionID, err := uuid.Parse(cookie)
		if err == nil {
			if err := h.service.Logout(c.Request.Context(), sessionID); err != nil {
				respondWithError(c, err)
				return
			}
		}
	}

	h.clearAuthCookies(c)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	var request model.RefreshTokenRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokenPair, err := h.service.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (h *UserHandler) setAuthCookies(c *gin.Context, auth *model.AuthResponse) {
	maxAge := h.config.JWT.ExpiryHours * 3600
	sessionMaxAge := h.config.JWT.RefreshExpiryHours * 3600
	secure := h.config.Server.Environment == "production"

	c.SetCookie(middleware.AccessTokenCookie, auth.AccessToken, maxAge, "/", "", secure, true)
	c.SetCookie(middleware.SessionIDCookie, auth.SessionID, sessionMaxAge, "/", "", secure, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	secure := h.config.Server.Environment == "production"

	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.SessionIDCookie, "", -1, "/", "", secure, true)
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrPasswordMismatch),
		errors.Is(err, appErrors.ErrMissingCredential),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
