package models

import "time"

const (
	TicketWaiting = "waiting"
	TicketCalled  = "called"
	TicketServed  = "served"
	TicketSkipped = "skipped"
)

// QueueTicket is a walk-in check-in ticket hanging off a booking. Display
// and front-desk bookkeeping only.
type QueueTicket struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Position int        `json:"position"`
	Status   string     `gorm:"size:20;default:'waiting'" json:"status"`
	IssuedAt *time.Time `json:"issued_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
