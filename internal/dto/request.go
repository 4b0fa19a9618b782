package dto

import (
	"time"

	"github.com/Eursukkul/local-event-finder/internal/models"
)

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	StartUTC    time.Time `json:"start_utc" validate:"required"`
	EndUTC      time.Time `json:"end_utc" validate:"required,gtefield=StartUTC"`
	Category    string    `json:"category" validate:"max=100"`
	City        string    `json:"city" validate:"max=100"`
	Venue       string    `json:"venue" validate:"max=200"`
	Address     string    `json:"address" validate:"max=200"`
	IsFree      bool      `json:"is_free"`
	Organizer   string    `json:"organizer" validate:"max=200"`
	ExternalURL *string   `json:"external_url" validate:"omitempty,url"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	TotalSeats  *int      `json:"total_seats" validate:"omitempty,gte=0"`
}

func (r *CreateEventRequest) ToModel() *models.Event {
	return &models.Event{
		Title:       r.Title,
		Description: r.Description,
		StartUTC:    r.StartUTC.UTC(),
		EndUTC:      r.EndUTC.UTC(),
		Category:    r.Category,
		City:        r.City,
		Venue:       r.Venue,
		Address:     r.Address,
		IsFree:      r.IsFree,
		Organizer:   r.Organizer,
		ExternalURL: r.ExternalURL,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		TotalSeats:  r.TotalSeats,
	}
}

// UpdateEventRequest is a partial edit; omitted fields keep their value.
// Setting unlimited_seats removes the capacity limit.
type UpdateEventRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	StartUTC       *time.Time `json:"start_utc"`
	EndUTC         *time.Time `json:"end_utc"`
	Category       *string    `json:"category" validate:"omitempty,max=100"`
	City           *string    `json:"city" validate:"omitempty,max=100"`
	Venue          *string    `json:"venue" validate:"omitempty,max=200"`
	Address        *string    `json:"address" validate:"omitempty,max=200"`
	IsFree         *bool      `json:"is_free"`
	Organizer      *string    `json:"organizer" validate:"omitempty,max=200"`
	ExternalURL    *string    `json:"external_url" validate:"omitempty,url"`
	Latitude       *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	TotalSeats     *int       `json:"total_seats" validate:"omitempty,gte=0"`
	UnlimitedSeats bool       `json:"unlimited_seats"`
}

// SearchEventsRequest is bound from the query string.
type SearchEventsRequest struct {
	Text      string  `query:"text"`
	City      string  `query:"city"`
	Category  string  `query:"category"`
	From      string  `query:"from"`
	To        string  `query:"to"`
	Latitude  string  `query:"lat" validate:"omitempty,latitude"`
	Longitude string  `query:"lon" validate:"omitempty,longitude"`
	RadiusKm  float64 `query:"radius" validate:"gte=0"`
	Sort      string  `query:"sort" validate:"omitempty,oneof=startAsc startDesc titleAsc titleDesc distanceAsc distanceDesc"`
	Page      int     `query:"page" validate:"gte=0"`
	PageSize  int     `query:"page_size" validate:"gte=0,lte=100"`
}
