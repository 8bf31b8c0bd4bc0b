package dto

import "time"

type BookingListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}
