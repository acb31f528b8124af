package dto

import "time"

// SubmitAnswerResult is returned for every submission, accepted or rejected.
// A guard rejection (already completed, attempt cap reached) comes back with
// Success=false and records nothing; it is not an error.
type SubmitAnswerResult struct {
	Success            bool     `json:"success"`
	AttemptNumber      int      `json:"attempt_number"`
	MaxAttemptsReached bool     `json:"max_attempts_reached"`
	IsCorrect          bool     `json:"is_correct"`
	Score              float64  `json:"score"`
	AIFeedback         string   `json:"ai_feedback,omitempty"`
	AISuggestions      []string `json:"ai_suggestions,omitempty"`
	RelatedConcepts    []string `json:"related_concepts,omitempty"`
}

// SavedAnswerStatus describes the latest attempt for an exercise instance plus
// aggregate counters over the whole attempt history.
type SavedAnswerStatus struct {
	UserAnswer         string    `json:"user_answer"`
	IsCorrect          bool      `json:"is_correct"`
	Score              *float64  `json:"score,omitempty"`
	AttemptNumber      int       `json:"attempt_number"`
	MaxAttemptsReached bool      `json:"max_attempts_reached"`
	IsCompleted        bool      `json:"is_completed"`
	AIFeedback         string    `json:"ai_feedback,omitempty"`
	AISuggestions      []string  `json:"ai_suggestions,omitempty"`
	RelatedConcepts    []string  `json:"related_concepts,omitempty"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// InteractionStatusResponse wraps GET /exercises/interactions. Data is keyed
// by the exercise id the client asked about; empty when no attempt exists yet.
type InteractionStatusResponse struct {
	Success bool                         `json:"success"`
	Data    map[string]SavedAnswerStatus `json:"data"`
}

// TopicProgressDTO mirrors one stored topic progress record.
type TopicProgressDTO struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	LearningPathID uint       `json:"learning_path_id"`
	TopicID        uint       `json:"topic_id"`
	Score          float64    `json:"score"`
	Attempts       int        `json:"attempts"`
	TimeSpent      float64    `json:"time_spent"`
	RecentScores   []float64  `json:"recent_scores"`
	Status         string     `json:"status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// TopicProgressResponse wraps GET /progress/topic. Data is null when no
// progress record has been saved yet.
type TopicProgressResponse struct {
	Success               bool              `json:"success"`
	Data                  *TopicProgressDTO `json:"data"`
	AllExercisesCompleted bool              `json:"all_exercises_completed"`
}

// ExerciseResponseDTO is the user-facing exercise view; answer material
// (correct answer, evaluation criteria) is deliberately absent.
type ExerciseResponseDTO struct {
	ID           uint      `json:"id"`
	TopicID      uint      `json:"topic_id"`
	ContentID    string    `json:"content_id"`
	Title        string    `json:"title"`
	Question     string    `json:"question"`
	Type         string    `json:"type"`
	OrderInTopic int       `json:"order_in_topic"`
	CreatedAt    time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
