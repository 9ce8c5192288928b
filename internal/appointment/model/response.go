package model

import "time"

type AppointmentResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Duration      int       `json:"duration"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
	TotalPages   int                   `json:"totalPages"`
}

type BulkActionResponse struct {
	Action        string `json:"action"`
	AffectedCount int64  `json:"affectedCount"`
}

func (a *Appointment) ToResponse() *AppointmentResponse {
	return &AppointmentResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Date:          a.Date,
		Time:          a.Time,
		Duration:      a.Duration,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}
