package dto

import (
	"time"

	"github.com/google/uuid"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AppointmentListDTO is the compact row used by the admin overview.
type AppointmentListDTO struct {
	ID              uuid.UUID `json:"id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	ServiceCategory string    `json:"service_category"`
	CustomerName    string    `json:"customer_name"`
	Vehicle         string    `json:"vehicle"`
}

type OverviewDTO struct {
	Total          int64                `json:"total"`
	ByStatus       map[string]int64     `json:"by_status"`
	TodayScheduled int64                `json:"today_scheduled"`
	Upcoming       int64                `json:"upcoming"`
	Next           []AppointmentListDTO `json:"next"`
	GeneratedAt    time.Time            `json:"generated_at"`
}
