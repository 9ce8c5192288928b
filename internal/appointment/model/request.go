package model

type CreateAppointmentRequest struct {
	Title         string `json:"title" validate:"required,max=100"`
	Description   string `json:"description" validate:"omitempty,max=500"`
	Date          string `json:"date" validate:"required,calendar_date"`
	Time          string `json:"time" validate:"required,clock_time"`
	Duration      int    `json:"duration" validate:"omitempty,min=1,max=1440"`
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerEmail string `json:"customerEmail" validate:"required,contains=@,max=100"`
}

type UpdateAppointmentRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	Date          *string `json:"date" validate:"omitempty,calendar_date"`
	Time          *string `json:"time" validate:"omitempty,clock_time"`
	Duration      *int    `json:"duration" validate:"omitempty,min=1,max=1440"`
	CustomerName  *string `json:"customerName" validate:"omitempty,min=1,max=100"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,contains=@,max=100"`
	Status        *Status `json:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
}

type FilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status" validate:"omitempty,oneof=all scheduled cancelled completed"`
	StartDate string `form:"startDate" validate:"omitempty,calendar_date"`
	EndDate   string `form:"endDate" validate:"omitempty,calendar_date"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PerPage   int    `form:"per_page" validate:"omitempty,min=1,max=100"`
}

type BulkActionRequest struct {
	AppointmentIDs []uint `json:"appointmentIds" validate:"required,min=1"`
	Action         string `json:"action" validate:"required,oneof=delete cancel"`
}
