package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointment-scheduler/internal/appointment/model"
	"appointment-scheduler/internal/appointment/service"
	"appointment-scheduler/internal/logger"
	"appointment-scheduler/internal/middleware"
	appErrors "appointment-scheduler/pkg/errors"
	"appointment-scheduler/pkg/utils"
)

type AppointmentHandler struct {
	service *service.AppointmentService
}

func NewHandler(service *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	appointments := router.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/stats", h.GetStats)
		appointments.POST("", h.CreateAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/complete", h.CompleteAppointment)
		appointments.POST("/bulk", h.BulkAction)
	}
}

func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var filter model.FilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	list, err := h.service.ListAppointments(c.Request.Context(), ownerID, &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Appointments retrieved successfully", list)
}

func (h *AppointmentHandler) GetStats(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	req.Description = utils.SanitizeText(req.Description)
	req.CustomerName = utils.SanitizeString(req.CustomerName)
	req.CustomerEmail = utils.SanitizeEmail(req.CustomerEmail)

	appointment, err := h.service.CreateAppointment(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	appointmentID, err := parseAppointmentID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		sanitized := utils.SanitizeString(*req.Title)
		req.Title = &sanitized
	}
	if req.Description != nil {
		sanitized := utils.SanitizeText(*req.Description)
		req.Description = &sanitized
	}
	if req.CustomerName != nil {
		sanitized := utils.SanitizeString(*req.CustomerName)
		req.CustomerName = &sanitized
	}
	if req.CustomerEmail != nil {
		sanitized := utils.SanitizeEmail(*req.CustomerEmail)
		req.CustomerEmail = &sanitized
	}

	appointment, err := h.service.UpdateAppointment(c.Request.Context(), ownerID, appointmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	appointmentID, err := parseAppointmentID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), ownerID, appointmentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	h.setStatus(c, func(ownerID, appointmentID uint) (*model.AppointmentResponse, error) {
		return h.service.CancelAppointment(c.Request.Context(), ownerID, appointmentID)
	}, "Appointment cancelled successfully")
}

func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	h.setStatus(c, func(ownerID, appointmentID uint) (*model.AppointmentResponse, error) {
		return h.service.CompleteAppointment(c.Request.Context(), ownerID, appointmentID)
	}, "Appointment completed successfully")
}

func (h *AppointmentHandler) setStatus(c *gin.Context, op func(uint, uint) (*model.AppointmentResponse, error), message string) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	appointmentID, err := parseAppointmentID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	appointment, err := op(ownerID, appointmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) BulkAction(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req model.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.BulkAction(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk action applied successfully", result)
}

func parseAppointmentID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrAppointmentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrSlotTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
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
