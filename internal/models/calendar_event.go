package models

import "time"

// CalendarEvent mirrors a booking for the owner's calendar view. It carries
// no scheduling authority; conflict checks never read it.
type CalendarEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint `json:"business_id"`
	BookingID  uint `gorm:"uniqueIndex" json:"booking_id"`

	Booking Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title     string    `gorm:"size:150" json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
