package models

import "time"

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CategoryID uint     `json:"category_id"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`
	Location    string `gorm:"size:255" json:"location"`

	// Scheduling-irrelevant; kept for directory listings.
	Latitude  *float64 `gorm:"type:decimal(10,6)" json:"latitude"`
	Longitude *float64 `gorm:"type:decimal(10,6)" json:"longitude"`

	// Daily operating window as "15:04" clock strings. Empty means the
	// business accepts no bookings.
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	Timezone string `gorm:"size:50" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
