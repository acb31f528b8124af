package repository

import (
	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

type ExerciseRepository interface {
	Create(exercise *model.Exercise) error
	FindByID(id uint) (*model.Exercise, error)
	FindByContentID(contentID string) (*model.Exercise, error)
	FindByTopicID(topicID uint) ([]model.Exercise, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(exercise *model.Exercise) error {
	return r.db.Create(exercise).Error
}

func (r *exerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.db.First(&exercise, id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) FindByContentID(contentID string) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.db.Where("content_id = ?", contentID).First(&exercise).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

// FindByTopicID returns the topic's active exercises; soft-deleted (replaced)
// exercises are excluded by gorm automatically.
func (r *exerciseRepository) FindByTopicID(topicID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.db.Where("topic_id = ?", topicID).Order("order_in_topic ASC").Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}
