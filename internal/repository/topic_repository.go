package repository

import (
	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

type TopicRepository interface {
	Create(topic *model.Topic) error
	FindByID(id uint) (*model.Topic, error)
	FindByIDWithExercises(id uint) (*model.Topic, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *model.Topic) error {
	// GORM creates the associated exercises when topic.Exercises is populated.
	return r.db.Create(topic).Error
}

func (r *topicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByIDWithExercises(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("exercises.order_in_topic ASC")
	}).First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}
