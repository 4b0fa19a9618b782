package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/models"
	"github.com/Eursukkul/local-event-finder/internal/repository"
	"gorm.io/gorm"
)

// Refusal explains why a toggle did not reserve a seat. Refusals are expected
// outcomes and are returned as values, never as errors.
type Refusal string

const (
	RefusalNone      Refusal = ""
	RefusalCancelled Refusal = "event_cancelled"
	RefusalNoSeats   Refusal = "no_seats"
)

const (
	msgReserved  = "You're interested! A seat has been reserved for you."
	msgReleased  = "You're no longer interested. Your seat has been released."
	msgCancelled = "This event has been cancelled and is not accepting reservations."
	msgNoSeats   = "Sorry, there are no seats left for this event."
)

type ToggleResult struct {
	Interested     bool
	Refusal        Refusal
	Message        string
	AvailableSeats int
}

func (r *ToggleResult) Refused() bool {
	return r.Refusal != RefusalNone
}

// InterestStatus is an advisory snapshot. A seat may be taken between reading it
// and a later toggle; ToggleInterest enforces capacity on its own.
type InterestStatus struct {
	Interested     bool
	Count          int
	CanRegister    bool
	AvailableSeats int
}

// CapacityChange describes how an edit touches the seat limit. The zero value
// leaves capacity alone.
type CapacityChange struct {
	TotalSeats *int
	Unlimited  bool
}

type ReservationService interface {
	ToggleInterest(ctx context.Context, eventID uint, userID string) (*ToggleResult, error)
	IsInterested(ctx context.Context, eventID uint, userID string) (bool, error)
	InterestCount(ctx context.Context, eventID uint) (int, error)
	CanRegister(ctx context.Context, eventID uint) (bool, error)
	Status(ctx context.Context, eventID uint, userID string) (*InterestStatus, error)
	UserInterests(ctx context.Context, userID string) ([]models.Interest, error)
	EventInterests(ctx context.Context, eventID uint) ([]models.Interest, error)
	Resync(ctx context.Context, eventID uint) error
	ResyncAfterCapacityChange(ctx context.Context, eventID uint, newTotalSeats int) error
	RemoveCapacityLimit(ctx context.Context, eventID uint) error
	SaveEvent(ctx context.Context, event *models.Event, change CapacityChange) error
}

type reservationService struct {
	eventRepo    repository.EventRepository
	interestRepo repository.InterestRepository
	publisher    Publisher
	locks        *eventLocks
	now          func() time.Time
}

func NewReservationService(eventRepo repository.EventRepository, interestRepo repository.InterestRepository, publisher Publisher) ReservationService {
	return &reservationService{
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		publisher:    publisher,
		locks:        newEventLocks(),
		now:          time.Now,
	}
}

func (s *reservationService) ToggleInterest(ctx context.Context, eventID uint, userID string) (*ToggleResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	var result *ToggleResult
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row; other toggles and resyncs for this event wait here
		event, err := s.lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}

		// 2. An existing interest means this call retracts it
		existing, err := s.interestRepo.FindByEventAndUser(ctx, tx, eventID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find interest: %w", err)
		}

		if existing != nil {
			result, err = s.release(ctx, tx, event, existing)
			return err
		}
		result, err = s.reserve(ctx, tx, event, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !result.Refused() {
		notify(s.publisher, dto.KeyInterestToggled, dto.InterestToggledMessage{
			EventID:        eventID,
			UserID:         userID,
			Interested:     result.Interested,
			AvailableSeats: result.AvailableSeats,
			At:             s.now().UTC(),
		})
	}
	return result, nil
}

func (s *reservationService) release(ctx context.Context, tx *gorm.DB, event *models.Event, interest *models.Interest) (*ToggleResult, error) {
	if err := s.interestRepo.Delete(ctx, tx, interest.ID); err != nil {
		return nil, fmt.Errorf("delete interest: %w", err)
	}

	available := 0
	if event.IsBounded() {
		count, err := s.interestRepo.CountByEvent(ctx, tx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("count interests: %w", err)
		}
		available = min(event.AvailableSeats+1, *event.TotalSeats, derivedSeats(*event.TotalSeats, count))
	}

	if err := s.eventRepo.UpdateSeats(ctx, tx, event.ID, event.TotalSeats, available); err != nil {
		return nil, fmt.Errorf("update seats: %w", err)
	}

	return &ToggleResult{
		Interested:     false,
		Message:        msgReleased,
		AvailableSeats: available,
	}, nil
}

func (s *reservationService) reserve(ctx context.Context, tx *gorm.DB, event *models.Event, userID string) (*ToggleResult, error) {
	if event.IsCancelled {
		return refused(RefusalCancelled, msgCancelled, event.AvailableSeats), nil
	}

	var count int64
	if event.IsBounded() {
		if event.AvailableSeats <= 0 {
			return refused(RefusalNoSeats, msgNoSeats, event.AvailableSeats), nil
		}
		// The stored counter may have drifted above the ledger after an
		// out-of-band edit; the ledger wins.
		var err error
		count, err = s.interestRepo.CountByEvent(ctx, tx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("count interests: %w", err)
		}
		if count >= int64(*event.TotalSeats) {
			available := derivedSeats(*event.TotalSeats, count)
			if err := s.eventRepo.UpdateSeats(ctx, tx, event.ID, event.TotalSeats, available); err != nil {
				return nil, fmt.Errorf("update seats: %w", err)
			}
			return refused(RefusalNoSeats, msgNoSeats, available), nil
		}
	}

	interest := &models.Interest{
		EventID:      event.ID,
		UserID:       userID,
		InterestedAt: s.now().UTC(),
		Status:       models.StatusInterested,
	}
	if err := s.interestRepo.Create(ctx, tx, interest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: event %d, user %q", ErrInvariantViolation, event.ID, userID)
		}
		return nil, fmt.Errorf("create interest: %w", err)
	}

	available := 0
	if event.IsBounded() {
		available = min(max(event.AvailableSeats-1, 0), derivedSeats(*event.TotalSeats, count+1))
	}

	if err := s.eventRepo.UpdateSeats(ctx, tx, event.ID, event.TotalSeats, available); err != nil {
		return nil, fmt.Errorf("update seats: %w", err)
	}

	return &ToggleResult{
		Interested:     true,
		Message:        msgReserved,
		AvailableSeats: available,
	}, nil
}

func (s *reservationService) IsInterested(ctx context.Context, eventID uint, userID string) (bool, error) {
	_, err := s.interestRepo.FindByEventAndUser(ctx, s.interestRepo.GetDB(), eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find interest: %w", err)
	}
	return true, nil
}

func (s *reservationService) InterestCount(ctx context.Context, eventID uint) (int, error) {
	count, err := s.interestRepo.CountByEvent(ctx, s.interestRepo.GetDB(), eventID)
	if err != nil {
		return 0, fmt.Errorf("count interests: %w", err)
	}
	return int(count), nil
}

// CanRegister reports false for missing or cancelled events.
func (s *reservationService) CanRegister(ctx context.Context, eventID uint) (bool, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	return canRegister(event), nil
}

func (s *reservationService) Status(ctx context.Context, eventID uint, userID string) (*InterestStatus, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	count, err := s.InterestCount(ctx, eventID)
	if err != nil {
		return nil, err
	}

	interested := false
	if userID != "" {
		if interested, err = s.IsInterested(ctx, eventID, userID); err != nil {
			return nil, err
		}
	}

	return &InterestStatus{
		Interested:     interested,
		Count:          count,
		CanRegister:    canRegister(event),
		AvailableSeats: event.AvailableSeats,
	}, nil
}

func (s *reservationService) UserInterests(ctx context.Context, userID string) ([]models.Interest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	return s.interestRepo.FindByUser(ctx, userID)
}

func (s *reservationService) EventInterests(ctx context.Context, eventID uint) ([]models.Interest, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.interestRepo.FindByEvent(ctx, eventID)
}

// Resync recomputes available seats from the ledger. Events without a seat limit
// are left untouched.
func (s *reservationService) Resync(ctx context.Context, eventID uint) error {
	return s.withLockedEvent(ctx, eventID, func(tx *gorm.DB, event *models.Event) error {
		if !event.IsBounded() {
			return nil
		}
		count, err := s.interestRepo.CountByEvent(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("count interests: %w", err)
		}
		return s.eventRepo.UpdateSeats(ctx, tx, eventID, event.TotalSeats, derivedSeats(*event.TotalSeats, count))
	})
}

// ResyncAfterCapacityChange records a new capacity. Existing interests are kept even
// when they exceed it; new reservations are refused until enough users retract.
func (s *reservationService) ResyncAfterCapacityChange(ctx context.Context, eventID uint, newTotalSeats int) error {
	if newTotalSeats < 0 {
		return ErrInvalidCapacity
	}
	return s.withLockedEvent(ctx, eventID, func(tx *gorm.DB, event *models.Event) error {
		count, err := s.interestRepo.CountByEvent(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("count interests: %w", err)
		}
		return s.eventRepo.UpdateSeats(ctx, tx, eventID, &newTotalSeats, derivedSeats(newTotalSeats, count))
	})
}

func (s *reservationService) RemoveCapacityLimit(ctx context.Context, eventID uint) error {
	return s.withLockedEvent(ctx, eventID, func(tx *gorm.DB, event *models.Event) error {
		return s.eventRepo.UpdateSeats(ctx, tx, eventID, nil, 0)
	})
}

// SaveEvent writes the descriptive fields and any capacity change under the
// event lock. Either both land or neither does.
func (s *reservationService) SaveEvent(ctx context.Context, event *models.Event, change CapacityChange) error {
	if change.TotalSeats != nil && *change.TotalSeats < 0 {
		return ErrInvalidCapacity
	}
	return s.withLockedEvent(ctx, event.ID, func(tx *gorm.DB, locked *models.Event) error {
		if err := s.eventRepo.UpdateDetails(ctx, tx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		switch {
		case change.Unlimited:
			if !locked.IsBounded() {
				return nil
			}
			return s.eventRepo.UpdateSeats(ctx, tx, event.ID, nil, 0)
		case change.TotalSeats != nil:
			if locked.IsBounded() && *locked.TotalSeats == *change.TotalSeats {
				return nil
			}
			count, err := s.interestRepo.CountByEvent(ctx, tx, event.ID)
			if err != nil {
				return fmt.Errorf("count interests: %w", err)
			}
			total := *change.TotalSeats
			return s.eventRepo.UpdateSeats(ctx, tx, event.ID, &total, derivedSeats(total, count))
		}
		return nil
	})
}

func (s *reservationService) withLockedEvent(ctx context.Context, eventID uint, fn func(tx *gorm.DB, event *models.Event) error) error {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	return s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		return fn(tx, event)
	})
}

func (s *reservationService) lockEvent(ctx context.Context, tx *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return event, nil
}

func canRegister(event *models.Event) bool {
	if event.IsCancelled {
		return false
	}
	if !event.IsBounded() {
		return true
	}
	return event.AvailableSeats > 0
}

func derivedSeats(totalSeats int, interests int64) int {
	return max(totalSeats-int(interests), 0)
}

func refused(reason Refusal, message string, available int) *ToggleResult {
	return &ToggleResult{
		Interested:     false,
		Refusal:        reason,
		Message:        message,
		AvailableSeats: available,
	}
}
