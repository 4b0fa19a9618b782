package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter narrows a catalog search. Zero values are ignored.
type EventFilter struct {
	Text     string
	City     string
	Category string
	From     *time.Time
	To       *time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	Search(ctx context.Context, filter EventFilter, order string, offset, limit int) ([]models.Event, int64, error)
	UpdateDetails(ctx context.Context, tx *gorm.DB, event *models.Event) error
	UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, totalSeats *int, availableSeats int) error
	ToggleCancelled(ctx context.Context, id uint) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given transaction.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	q := tx.WithContext(ctx)
	// SQLite has no row locks; it serializes writers itself.
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Search returns one page of matching events and the total number of matches.
// A negative limit returns every match.
func (r *eventRepository) Search(ctx context.Context, filter EventFilter, order string, offset, limit int) ([]models.Event, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.filtered(ctx, filter).Order(order)
	if limit >= 0 {
		q = q.Offset(offset).Limit(limit)
	}

	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *eventRepository) filtered(ctx context.Context, f EventFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Event{})
	if text := strings.TrimSpace(f.Text); text != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", like, like)
	}
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if category := strings.TrimSpace(f.Category); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if f.From != nil {
		q = q.Where("start_utc >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_utc <= ?", *f.To)
	}
	return q
}

// UpdateDetails saves the descriptive fields only. Capacity columns belong to the
// reservation service and are never written here.
func (r *eventRepository) UpdateDetails(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).
		Model(event).
		Select("title", "description", "start_utc", "end_utc", "category", "city", "venue",
			"address", "is_free", "organizer", "external_url", "latitude", "longitude").
		Updates(event).Error
}

func (r *eventRepository) UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, totalSeats *int, availableSeats int) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_seats":     totalSeats,
			"available_seats": availableSeats,
		}).Error
}

// ToggleCancelled flips the cancellation flag in a single statement.
func (r *eventRepository) ToggleCancelled(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("is_cancelled", gorm.Expr("NOT is_cancelled"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := tx.WithContext(ctx).Delete(&models.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
