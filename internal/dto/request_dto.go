package dto

// SubmitAnswerRequest is the body of POST /exercises/interactions.
// CorrectAnswer and IsCorrect are required for every type except "coding",
// where the AI judge decides correctness; the controller enforces that split.
type SubmitAnswerRequest struct {
	UserID             uint     `json:"user_id" binding:"required"`
	ContentID          string   `json:"content_id" binding:"required"`
	ExerciseID         uint     `json:"exercise_id" binding:"required"`
	UserAnswer         string   `json:"user_answer" binding:"required"`
	CorrectAnswer      string   `json:"correct_answer"`
	IsCorrect          *bool    `json:"is_correct"`
	ExerciseType       string   `json:"exercise_type" binding:"required,oneof=multiple_choice code_completion debugging coding"`
	ExerciseQuestion   string   `json:"exercise_question"`
	UserSkillLevel     string   `json:"user_skill_level" binding:"omitempty,oneof=beginner intermediate"`
	EvaluationCriteria string   `json:"evaluation_criteria"`
	ResponseTime       *float64 `json:"response_time"`
}

// TopicProgressCreateRequest is the body of POST /progress/topic.
type TopicProgressCreateRequest struct {
	UserID         uint `json:"user_id" binding:"required"`
	LearningPathID uint `json:"learning_path_id" binding:"required"`
	TopicID        uint `json:"topic_id" binding:"required"`
}
