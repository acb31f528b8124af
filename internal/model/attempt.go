package model

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt is one recorded submission of an answer for one exercise instance.
// Rows are append-only: they are never updated or deleted, and at most
// MaxAttempts of them may exist per (user_id, content_id) while the exercise
// is unsolved.
type Attempt struct {
	ID              uint                        `gorm:"primarykey" json:"id"`
	UserID          uint                        `json:"user_id" gorm:"not null;index:idx_attempt_user_content"`
	ContentID       string                      `json:"content_id" gorm:"not null;index:idx_attempt_user_content"`
	AttemptNumber   int                         `json:"attempt_number" gorm:"not null"`
	UserAnswer      string                      `json:"user_answer" gorm:"type:text;not null"`
	CorrectAnswer   string                      `json:"correct_answer,omitempty" gorm:"type:text"`
	IsCorrect       bool                        `json:"is_correct"`
	Score           *float64                    `json:"score,omitempty"`
	AIFeedback      string                      `json:"ai_feedback,omitempty" gorm:"type:text"`
	AISuggestions   datatypes.JSONSlice[string] `json:"ai_suggestions,omitempty"`
	RelatedConcepts datatypes.JSONSlice[string] `json:"related_concepts,omitempty"`
	ResponseTime    *float64                    `json:"response_time,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}
