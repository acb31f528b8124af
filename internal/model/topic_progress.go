package model

import (
	"time"

	"gorm.io/datatypes"
)

// TopicProgress statuses. The aggregator only ever writes in_progress,
// completed or mastered; not_started exists for UI display of untouched topics.
const (
	ProgressStatusNotStarted = "not_started"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusCompleted  = "completed"
	ProgressStatusMastered   = "mastered"
)

// TopicProgress is derived state: it is recomputed in full from the attempt
// history every time it is saved, never maintained incrementally.
type TopicProgress struct {
	ID             uint                         `gorm:"primarykey" json:"id"`
	UserID         uint                         `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_path_topic"`
	LearningPathID uint                         `json:"learning_path_id" gorm:"not null;uniqueIndex:idx_progress_user_path_topic"`
	TopicID        uint                         `json:"topic_id" gorm:"not null;uniqueIndex:idx_progress_user_path_topic"`
	Score          float64                      `json:"score"`
	Attempts       int                          `json:"attempts"`
	TimeSpent      float64                      `json:"time_spent"`
	RecentScores   datatypes.JSONSlice[float64] `json:"recent_scores"`
	Status         string                       `json:"status" gorm:"not null;default:'in_progress'"`
	StartedAt      *time.Time                   `json:"started_at,omitempty"`
	CompletedAt    *time.Time                   `json:"completed_at,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}
