package handler

import (
	"context"

	"github.com/Eursukkul/local-event-finder/internal/middleware"
	"github.com/Eursukkul/local-event-finder/internal/models"
	"github.com/Eursukkul/local-event-finder/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, event *models.Event) error
	getFn    func(ctx context.Context, id uint) (*models.Event, error)
	searchFn func(ctx context.Context, q service.SearchQuery) (*service.SearchPage, error)
	updateFn func(ctx context.Context, id uint, in service.UpdateEventInput) (*models.Event, error)
	deleteFn func(ctx context.Context, id uint) error
	cancelFn func(ctx context.Context, id uint) (*models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) SearchEvents(ctx context.Context, q service.SearchQuery) (*service.SearchPage, error) {
	return m.searchFn(ctx, q)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, id uint, in service.UpdateEventInput) (*models.Event, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEventService) ToggleCancellation(ctx context.Context, id uint) (*models.Event, error) {
	return m.cancelFn(ctx, id)
}

// --- Mock ReservationService ---

type mockReservationService struct {
	service.ReservationService
	toggleFn         func(ctx context.Context, eventID uint, userID string) (*service.ToggleResult, error)
	statusFn         func(ctx context.Context, eventID uint, userID string) (*service.InterestStatus, error)
	userInterestsFn  func(ctx context.Context, userID string) ([]models.Interest, error)
	eventInterestsFn func(ctx context.Context, eventID uint) ([]models.Interest, error)
	resyncFn         func(ctx context.Context, eventID uint) error
}

func (m *mockReservationService) ToggleInterest(ctx context.Context, eventID uint, userID string) (*service.ToggleResult, error) {
	return m.toggleFn(ctx, eventID, userID)
}
func (m *mockReservationService) Status(ctx context.Context, eventID uint, userID string) (*service.InterestStatus, error) {
	return m.statusFn(ctx, eventID, userID)
}
func (m *mockReservationService) UserInterests(ctx context.Context, userID string) ([]models.Interest, error) {
	return m.userInterestsFn(ctx, userID)
}
func (m *mockReservationService) EventInterests(ctx context.Context, eventID uint) ([]models.Interest, error) {
	return m.eventInterestsFn(ctx, eventID)
}
func (m *mockReservationService) Resync(ctx context.Context, eventID uint) error {
	return m.resyncFn(ctx, eventID)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return e
}
