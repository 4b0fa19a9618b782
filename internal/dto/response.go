package dto

import (
	"time"

	"github.com/Eursukkul/local-event-finder/internal/models"
)

type EventResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartUTC       time.Time `json:"start_utc"`
	EndUTC         time.Time `json:"end_utc"`
	Category       string    `json:"category"`
	City           string    `json:"city"`
	Venue          string    `json:"venue"`
	Address        string    `json:"address"`
	IsFree         bool      `json:"is_free"`
	Organizer      string    `json:"organizer"`
	ExternalURL    *string   `json:"external_url,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	TotalSeats     *int      `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	IsCancelled    bool      `json:"is_cancelled"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	Distance       string    `json:"distance,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type EventPageResponse struct {
	Items      []EventResponse `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int64           `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// InterestToggleResponse keeps the camelCase shape the event page script reads.
type InterestToggleResponse struct {
	Success        bool   `json:"success"`
	IsInterested   bool   `json:"isInterested"`
	InterestCount  int    `json:"interestCount"`
	AvailableSeats int    `json:"availableSeats"`
	CanRegister    bool   `json:"canRegister"`
	Message        string `json:"message"`
}

type InterestStatusResponse struct {
	IsInterested   bool `json:"isInterested"`
	InterestCount  int  `json:"interestCount"`
	AvailableSeats int  `json:"availableSeats"`
	CanRegister    bool `json:"canRegister"`
}

type InterestResponse struct {
	ID           uint                  `json:"id"`
	EventID      uint                  `json:"event_id"`
	UserID       string                `json:"user_id"`
	InterestedAt time.Time             `json:"interested_at"`
	Status       models.InterestStatus `json:"status"`
	Event        *EventResponse        `json:"event,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		StartUTC:       e.StartUTC,
		EndUTC:         e.EndUTC,
		Category:       e.Category,
		City:           e.City,
		Venue:          e.Venue,
		Address:        e.Address,
		IsFree:         e.IsFree,
		Organizer:      e.Organizer,
		ExternalURL:    e.ExternalURL,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
		IsCancelled:    e.IsCancelled,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToInterestResponse(i *models.Interest) InterestResponse {
	resp := InterestResponse{
		ID:           i.ID,
		EventID:      i.EventID,
		UserID:       i.UserID,
		InterestedAt: i.InterestedAt,
		Status:       i.Status,
	}
	if i.Event != nil {
		ev := ToEventResponse(i.Event)
		resp.Event = &ev
	}
	return resp
}

func ToInterestResponses(interests []models.Interest) []InterestResponse {
	out := make([]InterestResponse, len(interests))
	for i := range interests {
		out[i] = ToInterestResponse(&interests[i])
	}
	return out
}
