package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/geo"
	"github.com/Eursukkul/local-event-finder/internal/models"
	"github.com/Eursukkul/local-event-finder/internal/repository"
	"gorm.io/gorm"
)

const (
	SortStartAsc     = "startAsc"
	SortStartDesc    = "startDesc"
	SortTitleAsc     = "titleAsc"
	SortTitleDesc    = "titleDesc"
	SortDistanceAsc  = "distanceAsc"
	SortDistanceDesc = "distanceDesc"

	DefaultRadiusKm = 10.0
	DefaultPageSize = 10
	MaxPageSize     = 100

	SearchCachePrefix = "cache:events:search:"
)

var sortOrders = map[string]string{
	SortStartAsc:  "start_utc ASC, id ASC",
	SortStartDesc: "start_utc DESC, id DESC",
	SortTitleAsc:  "title ASC, id ASC",
	SortTitleDesc: "title DESC, id DESC",
}

// SearchQuery describes one catalog search. Latitude and Longitude must be set
// together to enable the radius filter.
type SearchQuery struct {
	Text      string     `json:"text,omitempty"`
	City      string     `json:"city,omitempty"`
	Category  string     `json:"category,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	Latitude  *float64   `json:"lat,omitempty"`
	Longitude *float64   `json:"lon,omitempty"`
	RadiusKm  float64    `json:"radius,omitempty"`
	Sort      string     `json:"sort,omitempty"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

func (q SearchQuery) hasLocation() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// normalize applies defaults and bounds so equal searches share a cache key.
func (q SearchQuery) normalize() SearchQuery {
	q.Text = strings.TrimSpace(q.Text)
	q.City = strings.TrimSpace(q.City)
	q.Category = strings.TrimSpace(q.Category)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	q.PageSize = min(q.PageSize, MaxPageSize)
	if !q.hasLocation() {
		q.Latitude, q.Longitude, q.RadiusKm = nil, nil, 0
	} else if q.RadiusKm <= 0 {
		q.RadiusKm = DefaultRadiusKm
	}

	switch q.Sort {
	case SortStartAsc, SortStartDesc, SortTitleAsc, SortTitleDesc:
	case SortDistanceAsc, SortDistanceDesc:
		if !q.hasLocation() {
			q.Sort = SortStartAsc
		}
	default:
		q.Sort = SortStartAsc
	}
	return q
}

func (q SearchQuery) cacheKey() string {
	raw, _ := json.Marshal(q)
	sum := sha1.Sum(raw)
	return SearchCachePrefix + hex.EncodeToString(sum[:])
}

type SearchItem struct {
	Event      models.Event `json:"event"`
	DistanceKm *float64     `json:"distance_km,omitempty"`
	Distance   string       `json:"distance,omitempty"`
}

type SearchPage struct {
	Items      []SearchItem `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalItems int64        `json:"total_items"`
	TotalPages int          `json:"total_pages"`
}

// SearchCache stores serialized search pages. *cache.RedisCache satisfies it.
type SearchCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	PurgePrefix(ctx context.Context, prefix string) error
}

// UpdateEventInput carries a partial edit; nil fields are left unchanged.
// UnlimitedSeats removes the capacity limit and wins over TotalSeats.
type UpdateEventInput struct {
	Title          *string
	Description    *string
	StartUTC       *time.Time
	EndUTC         *time.Time
	Category       *string
	City           *string
	Venue          *string
	Address        *string
	IsFree         *bool
	Organizer      *string
	ExternalURL    *string
	Latitude       *float64
	Longitude      *float64
	TotalSeats     *int
	UnlimitedSeats bool
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	SearchEvents(ctx context.Context, query SearchQuery) (*SearchPage, error)
	UpdateEvent(ctx context.Context, id uint, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	ToggleCancellation(ctx context.Context, id uint) (*models.Event, error)
}

type eventService struct {
	eventRepo    repository.EventRepository
	interestRepo repository.InterestRepository
	reservations ReservationService
	publisher    Publisher
	cache        SearchCache
}

// NewEventService wires the catalog. publisher and cache may be nil.
func NewEventService(
	eventRepo repository.EventRepository,
	interestRepo repository.InterestRepository,
	reservations ReservationService,
	publisher Publisher,
	cache SearchCache,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		reservations: reservations,
		publisher:    publisher,
		cache:        cache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	event.ID = 0
	event.IsCancelled = false
	event.AvailableSeats = 0
	if event.IsBounded() {
		event.AvailableSeats = *event.TotalSeats
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	notify(s.publisher, dto.KeyEventCreated, event)
	s.purgeSearchCache(ctx)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) SearchEvents(ctx context.Context, query SearchQuery) (*SearchPage, error) {
	q := query.normalize()

	key := q.cacheKey()
	if s.cache != nil {
		var cached SearchPage
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[SearchCache] get %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	page, err := s.search(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, page); err != nil {
			log.Printf("[SearchCache] set %s: %v", key, err)
		}
	}
	return page, nil
}

func (s *eventService) search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	filter := repository.EventFilter{
		Text:     q.Text,
		City:     q.City,
		Category: q.Category,
		From:     q.From,
		To:       q.To,
	}
	order, ok := sortOrders[q.Sort]
	if !ok {
		order = sortOrders[SortStartAsc]
	}

	if !q.hasLocation() {
		events, total, err := s.eventRepo.Search(ctx, filter, order, (q.Page-1)*q.PageSize, q.PageSize)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		items := make([]SearchItem, len(events))
		for i, e := range events {
			items[i] = SearchItem{Event: e}
		}
		return newSearchPage(items, q, total), nil
	}

	// The radius filter runs in memory, so every SQL match is loaded.
	events, _, err := s.eventRepo.Search(ctx, filter, order, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}

	matches := geo.WithinRadius(events, *q.Latitude, *q.Longitude, q.RadiusKm)
	switch q.Sort {
	case SortDistanceAsc:
	case SortDistanceDesc:
		slices.Reverse(matches)
	default:
		position := make(map[uint]int, len(events))
		for i, e := range events {
			position[e.ID] = i
		}
		slices.SortStableFunc(matches, func(a, b geo.EventDistance) int {
			return position[a.Event.ID] - position[b.Event.ID]
		})
	}

	total := int64(len(matches))
	start := min((q.Page-1)*q.PageSize, len(matches))
	end := min(start+q.PageSize, len(matches))

	items := make([]SearchItem, 0, end-start)
	for _, m := range matches[start:end] {
		km := m.DistanceKm
		items = append(items, SearchItem{
			Event:      m.Event,
			DistanceKm: &km,
			Distance:   geo.FormatDistance(km),
		})
	}
	return newSearchPage(items, q, total), nil
}

func newSearchPage(items []SearchItem, q SearchQuery, total int64) *SearchPage {
	pages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &SearchPage{
		Items:      items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(event)
	if input.TotalSeats != nil && *input.TotalSeats < 0 {
		return nil, ErrInvalidCapacity
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	change := CapacityChange{TotalSeats: input.TotalSeats, Unlimited: input.UnlimitedSeats}
	if err := s.reservations.SaveEvent(ctx, event, change); err != nil {
		return nil, err
	}

	updated, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	notify(s.publisher, dto.KeyEventUpdated, updated)
	s.purgeSearchCache(ctx)
	return updated, nil
}

func (in UpdateEventInput) apply(e *models.Event) {
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.StartUTC != nil {
		e.StartUTC = in.StartUTC.UTC()
	}
	if in.EndUTC != nil {
		e.EndUTC = in.EndUTC.UTC()
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.City != nil {
		e.City = *in.City
	}
	if in.Venue != nil {
		e.Venue = *in.Venue
	}
	if in.Address != nil {
		e.Address = *in.Address
	}
	if in.IsFree != nil {
		e.IsFree = *in.IsFree
	}
	if in.Organizer != nil {
		e.Organizer = *in.Organizer
	}
	if in.ExternalURL != nil {
		e.ExternalURL = in.ExternalURL
	}
	if in.Latitude != nil {
		e.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		e.Longitude = in.Longitude
	}
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.interestRepo.DeleteByEvent(ctx, tx, id); err != nil {
			return fmt.Errorf("delete interests: %w", err)
		}
		if err := s.eventRepo.Delete(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	notify(s.publisher, dto.KeyEventDeleted, dto.EventDeletedMessage{ID: id})
	s.purgeSearchCache(ctx)
	return nil
}

func (s *eventService) ToggleCancellation(ctx context.Context, id uint) (*models.Event, error) {
	if err := s.eventRepo.ToggleCancelled(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("toggle cancellation: %w", err)
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	key := dto.KeyEventReinstated
	if event.IsCancelled {
		key = dto.KeyEventCancelled
	}
	notify(s.publisher, key, event)
	s.purgeSearchCache(ctx)
	return event, nil
}

func (s *eventService) purgeSearchCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.PurgePrefix(ctx, SearchCachePrefix); err != nil {
		log.Printf("[SearchCache] purge: %v", err)
	}
}

func validateEvent(e *models.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if e.EndUTC.Before(e.StartUTC) {
		return ErrInvalidSchedule
	}
	if e.TotalSeats != nil && *e.TotalSeats < 0 {
		return ErrInvalidCapacity
	}
	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		return ErrInvalidCoordinates
	}
	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		return ErrInvalidCoordinates
	}
	return nil
}
