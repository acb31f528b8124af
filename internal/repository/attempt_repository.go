package repository

import (
	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

// AttemptRepository is append-only: attempts are never updated or deleted.
type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByUserAndContent(userID uint, contentID string) ([]model.Attempt, error)
	CountByUserAndContent(userID uint, contentID string) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

// FindByUserAndContent returns every attempt for the pair in insertion order.
func (r *attemptRepository) FindByUserAndContent(userID uint, contentID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("created_at ASC, id ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) CountByUserAndContent(userID uint, contentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count, err
}
