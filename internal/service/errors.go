package service

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrUserIDRequired     = errors.New("user id is required")
	ErrInvariantViolation = errors.New("duplicate interest for event and user")
	ErrInvalidCapacity    = errors.New("total seats must not be negative")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidSchedule    = errors.New("end time must not be before start time")
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
)
