package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartUTC    time.Time `gorm:"column:start_utc;not null;index" json:"start_utc"`
	EndUTC      time.Time `gorm:"column:end_utc;not null" json:"end_utc"`
	Category    string    `gorm:"type:varchar(100);index:idx_events_city_category,priority:2" json:"category"`
	City        string    `gorm:"type:varchar(100);index:idx_events_city_category,priority:1" json:"city"`
	Venue       string    `gorm:"type:varchar(200)" json:"venue"`
	Address     string    `gorm:"type:varchar(200)" json:"address"`
	IsFree      bool      `gorm:"not null;default:false" json:"is_free"`
	Organizer   string    `gorm:"type:varchar(200)" json:"organizer"`
	ExternalURL *string   `gorm:"column:external_url" json:"external_url,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`

	// TotalSeats is nil for events without a capacity limit.
	TotalSeats     *int `json:"total_seats,omitempty"`
	AvailableSeats int  `gorm:"not null;default:0" json:"available_seats"`
	IsCancelled    bool `gorm:"not null;default:false" json:"is_cancelled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBounded reports whether the event has a seat limit.
func (e *Event) IsBounded() bool {
	return e.TotalSeats != nil
}

// HasLocation reports whether both coordinates are set.
func (e *Event) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}
