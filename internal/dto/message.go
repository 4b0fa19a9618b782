package dto

import "time"

// Routing keys published on the events exchange.
const (
	KeyEventCreated    = "event.created"
	KeyEventUpdated    = "event.updated"
	KeyEventCancelled  = "event.cancelled"
	KeyEventReinstated = "event.reinstated"
	KeyEventDeleted    = "event.deleted"
	KeyInterestToggled = "interest.toggled"
)

type InterestToggledMessage struct {
	EventID        uint      `json:"event_id"`
	UserID         string    `json:"user_id"`
	Interested     bool      `json:"interested"`
	AvailableSeats int       `json:"available_seats"`
	At             time.Time `json:"at"`
}

type EventDeletedMessage struct {
	ID uint `json:"id"`
}

// ResyncRequest arrives on the seats.resync routing key. With TotalSeats set it
// also records a new capacity.
type ResyncRequest struct {
	EventID    uint `json:"event_id"`
	TotalSeats *int `json:"total_seats,omitempty"`
}
