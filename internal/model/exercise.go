package model

import (
	"time"

	"gorm.io/gorm"
)

// Exercise types. "coding" exercises have no single correct answer and are
// graded by the AI judge against EvaluationCriteria; every other type is
// exact-match graded against CorrectAnswer.
const (
	ExerciseTypeMultipleChoice = "multiple_choice"
	ExerciseTypeCodeCompletion = "code_completion"
	ExerciseTypeDebugging      = "debugging"
	ExerciseTypeCoding         = "coding"
)

type Exercise struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	TopicID            uint           `json:"topic_id" gorm:"not null;index"`
	ContentID          string         `json:"content_id" gorm:"not null;uniqueIndex"`
	Title              string         `json:"title" gorm:"not null"`
	Question           string         `json:"question" gorm:"type:text;not null"`
	Type               string         `json:"type" gorm:"not null"`
	CorrectAnswer      string         `json:"correct_answer,omitempty" gorm:"type:text"` // empty for type="coding"
	EvaluationCriteria string         `json:"evaluation_criteria,omitempty" gorm:"type:text"`
	OrderInTopic       int            `json:"order_in_topic"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsCoding reports whether the exercise is AI-judged rather than exact-match.
func (e *Exercise) IsCoding() bool {
	return e.Type == ExerciseTypeCoding
}
