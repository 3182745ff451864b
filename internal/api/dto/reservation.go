package dto

import "github.com/casaluna/reservations/internal/model"

// SubmitRequest represents the JSON body expected in a reservation
// submission. Presence of every field except notes is required; the
// email address is deliberately not format-checked here, an unreachable
// address only fails the guest acknowledgement later.
type SubmitRequest struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Guests int    `json:"guests" validate:"required,gt=0"`
	Notes  string `json:"notes"`
}

// SubmitResponse is the body of a successful submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListResponse is the body of a reservation listing.
type ListResponse struct {
	Success      bool                `json:"success"`
	Reservations []model.Reservation `json:"reservations"`
}

// HealthResponse is the body of a health check.
type HealthResponse struct {
	Status          string `json:"status"`
	EmailConfigured bool   `json:"emailConfigured"`
}
