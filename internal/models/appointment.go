package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleSnapshot is copied at booking time; it never follows the listing.
type VehicleSnapshot struct {
	Make         string `gorm:"size:60;not null" json:"make"`
	Model        string `gorm:"size:60;not null" json:"model"`
	Year         int    `gorm:"not null" json:"year"`
	Registration string `gorm:"size:30" json:"registration"`
}

type CustomerSnapshot struct {
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`
}

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`

	ServiceCategory string `gorm:"size:20;not null" json:"service_category"`
	SpecificService string `gorm:"size:120;not null" json:"specific_service"`

	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:10;not null" json:"appointment_time"`

	Status string `gorm:"size:20;not null;default:'scheduled';index" json:"status"`

	Vehicle  VehicleSnapshot  `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicle"`
	Customer CustomerSnapshot `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`

	Technician      *string `gorm:"size:100" json:"technician"`
	Cost            *string `gorm:"size:50" json:"cost"`
	Notes           string  `gorm:"type:text" json:"notes"`
	AdditionalNotes string  `gorm:"type:text" json:"additional_notes"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
