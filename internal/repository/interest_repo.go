package repository

import (
	"context"

	"github.com/Eursukkul/local-event-finder/internal/models"
	"gorm.io/gorm"
)

type InterestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
	FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID uint, userID string) (*models.Interest, error)
	CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	FindByUser(ctx context.Context, userID string) ([]models.Interest, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.Interest, error)
	GetDB() *gorm.DB
}

type interestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *interestRepository) Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error {
	return tx.WithContext(ctx).Create(interest).Error
}

func (r *interestRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Interest{}, id).Error
}

func (r *interestRepository) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.Interest{}).Error
}

func (r *interestRepository) FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID uint, userID string) (*models.Interest, error) {
	var interest models.Interest
	err := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&interest).Error
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Interest{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// FindByUser returns the user's interests, newest first, with their events loaded.
func (r *interestRepository) FindByUser(ctx context.Context, userID string) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("interested_at DESC, id DESC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *interestRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("interested_at DESC, id DESC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}
