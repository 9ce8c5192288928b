package model

type AppointmentStats struct {
	Total     int64 `json:"total"`
	Scheduled int64 `json:"scheduled"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
	Today     int64 `json:"today"`
}
