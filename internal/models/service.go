package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"uniqueIndex:idx_services_business_name" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business"`

	Name        string `gorm:"size:100;not null;uniqueIndex:idx_services_business_name" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	// Slot generation unit. Changing it never recomputes existing bookings.
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
