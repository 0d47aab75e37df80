package models

// ReservationStatus is the two-state reservation lifecycle
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Date   string            `json:"date"`
	Time   string            `json:"time"`
	Guests int               `json:"guests"` // 1-20
	Status ReservationStatus `json:"status"`
}
