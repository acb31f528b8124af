package dto

import "time"

// ExerciseCreateDTO is used within TopicCreateDTO for admin topic creation.
type ExerciseCreateDTO struct {
	ContentID          string `json:"content_id"` // generated when empty
	Title              string `json:"title" binding:"required"`
	Question           string `json:"question" binding:"required"`
	Type               string `json:"type" binding:"required,oneof=multiple_choice code_completion debugging coding"`
	CorrectAnswer      string `json:"correct_answer"`      // required unless type="coding"
	EvaluationCriteria string `json:"evaluation_criteria"` // required for type="coding"
	OrderInTopic       int    `json:"order_in_topic" binding:"required,min=1"`
}

// TopicCreateDTO is for admin to create a new topic with all its exercises.
type TopicCreateDTO struct {
	LearningPathID uint                `json:"learning_path_id" binding:"required"`
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description,omitempty"`
	Exercises      []ExerciseCreateDTO `json:"exercises" binding:"omitempty,dive"`
}

// ExerciseAdminDTO is the admin view of an exercise, answer material included.
type ExerciseAdminDTO struct {
	ID                 uint      `json:"id"`
	TopicID            uint      `json:"topic_id"`
	ContentID          string    `json:"content_id"`
	Title              string    `json:"title"`
	Question           string    `json:"question"`
	Type               string    `json:"type"`
	CorrectAnswer      string    `json:"correct_answer,omitempty"`
	EvaluationCriteria string    `json:"evaluation_criteria,omitempty"`
	OrderInTopic       int       `json:"order_in_topic"`
	CreatedAt          time.Time `json:"created_at"`
}

// TopicResponseDTO is returned after admin topic creation.
type TopicResponseDTO struct {
	ID             uint               `json:"id"`
	LearningPathID uint               `json:"learning_path_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Exercises      []ExerciseAdminDTO `json:"exercises,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
