package models

import "time"

type InterestStatus string

// Status is carried as metadata only; every interest row holds a seat.
const (
	StatusInterested   InterestStatus = "interested"
	StatusAttending    InterestStatus = "attending"
	StatusNotAttending InterestStatus = "not_attending"
)

type Interest struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EventID      uint           `gorm:"not null;uniqueIndex:idx_interest_event_user,priority:1" json:"event_id"`
	UserID       string         `gorm:"type:varchar(450);not null;uniqueIndex:idx_interest_event_user,priority:2;index" json:"user_id"`
	InterestedAt time.Time      `gorm:"not null" json:"interested_at"`
	Status       InterestStatus `gorm:"type:varchar(20);not null;default:'interested'" json:"status"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}
