package model

import (
	"time"

	"gorm.io/gorm"
)

type Topic struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	LearningPathID uint           `json:"learning_path_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	Exercises      []Exercise     `json:"exercises,omitempty" gorm:"foreignKey:TopicID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
