package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MaxAttempts is the hard cap on submissions per (user, exercise instance).
// Once a user has this many recorded attempts without a correct one, the
// exercise can only be completed after regeneration.
const MaxAttempts = 3

// evaluationFallbackFeedback is recorded when the AI judge is unreachable.
// The attempt is kept either way: losing feedback quality beats losing the
// user's submission.
const evaluationFallbackFeedback = "We could not evaluate your solution this time. Your attempt was saved - please try submitting again."

var errAttemptCapReached = errors.New("attempt cap reached")

// ExerciseInteractionService is the attempt-level state machine: it enforces
// the attempt cap and sticky completion, decides when the AI collaborators
// run, and appends exactly one attempt record per accepted submission.
type ExerciseInteractionService interface {
	SubmitAnswer(req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResult, error)
	GetLatestStatus(userID uint, contentID string) (*dto.SavedAnswerStatus, error)
}

type exerciseInteractionService struct {
	attemptRepo repository.AttemptRepository
	gemini      GeminiLLMService
	db          *gorm.DB
}

func NewExerciseInteractionService(attemptRepo repository.AttemptRepository, gemini GeminiLLMService, db *gorm.DB) ExerciseInteractionService {
	return &exerciseInteractionService{attemptRepo: attemptRepo, gemini: gemini, db: db}
}

// SubmitAnswer records one submission. Guard rejections come back as a
// Success=false result, never as an error; only infrastructure failures
// (persistence) surface as errors.
func (s *exerciseInteractionService) SubmitAnswer(req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResult, error) {
	history, err := s.attemptRepo.FindByUserAndContent(req.UserID, req.ContentID)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: failed to load attempt history")
		return nil, fmt.Errorf("error loading attempt history: %w", err)
	}

	// Completion is sticky: one correct attempt closes the exercise for good.
	for _, a := range history {
		if a.IsCorrect {
			log.Info().Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: exercise already completed, rejecting")
			return &dto.SubmitAnswerResult{Success: false, AttemptNumber: len(history), MaxAttemptsReached: true}, nil
		}
	}
	if len(history) >= MaxAttempts {
		log.Info().Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: attempt cap reached, rejecting")
		return &dto.SubmitAnswerResult{Success: false, AttemptNumber: len(history), MaxAttemptsReached: true}, nil
	}

	attemptNumber := len(history) + 1
	skillLevel := req.UserSkillLevel
	if skillLevel == "" {
		skillLevel = "beginner"
	}

	attempt := model.Attempt{
		UserID:        req.UserID,
		ContentID:     req.ContentID,
		AttemptNumber: attemptNumber,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		ResponseTime:  req.ResponseTime,
	}

	var score float64
	if req.ExerciseType == model.ExerciseTypeCoding {
		// The AI judge is authoritative for coding exercises; whatever the
		// client computed is ignored.
		eval, evalErr := s.gemini.EvaluateCode(req.ExerciseQuestion, req.UserAnswer, attemptNumber, skillLevel, req.EvaluationCriteria)
		if evalErr != nil {
			log.Warn().Err(evalErr).Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: code evaluation failed, recording degraded attempt")
			attempt.IsCorrect = false
			score = 0
			attempt.AIFeedback = evaluationFallbackFeedback
		} else {
			attempt.IsCorrect = eval.IsPassing
			score = eval.Score
			attempt.AIFeedback = eval.Feedback
			attempt.AISuggestions = eval.Suggestions
		}
	} else {
		attempt.IsCorrect = req.IsCorrect != nil && *req.IsCorrect
		if attempt.IsCorrect {
			score = 100
		} else {
			score = 0
			// Hints are only worth generating while attempts remain; on the
			// final failure the caller reveals the correct answer instead.
			if attemptNumber < MaxAttempts {
				feedback, fbErr := s.gemini.GenerateFeedback(req.ExerciseQuestion, req.ExerciseType, req.UserAnswer, req.CorrectAnswer, attemptNumber, skillLevel)
				if fbErr != nil {
					log.Warn().Err(fbErr).Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: feedback generation failed, recording attempt without feedback")
				} else {
					attempt.AIFeedback = feedback.Feedback
					attempt.AISuggestions = feedback.Hints
					attempt.RelatedConcepts = feedback.RelatedConcepts
				}
			}
		}
	}
	attempt.Score = &score

	// Count again inside the transaction so a concurrent submission that
	// landed during the AI round-trip is seen before we append.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Attempt{}).
			Where("user_id = ? AND content_id = ?", req.UserID, req.ContentID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count attempts: %w", err)
		}
		if count >= MaxAttempts {
			return errAttemptCapReached
		}
		attempt.AttemptNumber = int(count) + 1
		return tx.Create(&attempt).Error
	})
	if errors.Is(err, errAttemptCapReached) {
		return &dto.SubmitAnswerResult{Success: false, AttemptNumber: MaxAttempts, MaxAttemptsReached: true}, nil
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitAnswer: failed to record attempt")
		return nil, fmt.Errorf("error recording attempt: %w", err)
	}

	return &dto.SubmitAnswerResult{
		Success:            true,
		AttemptNumber:      attempt.AttemptNumber,
		MaxAttemptsReached: attempt.AttemptNumber >= MaxAttempts,
		IsCorrect:          attempt.IsCorrect,
		Score:              score,
		AIFeedback:         attempt.AIFeedback,
		AISuggestions:      attempt.AISuggestions,
		RelatedConcepts:    attempt.RelatedConcepts,
	}, nil
}

// GetLatestStatus returns the most recent attempt plus aggregate counters, or
// nil when the user has never submitted for this exercise instance.
func (s *exerciseInteractionService) GetLatestStatus(userID uint, contentID string) (*dto.SavedAnswerStatus, error) {
	history, err := s.attemptRepo.FindByUserAndContent(userID, contentID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("contentID", contentID).Msg("GetLatestStatus: failed to load attempt history")
		return nil, fmt.Errorf("error loading attempt history: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}

	latest := history[len(history)-1]
	isCompleted := false
	for _, a := range history {
		if a.IsCorrect {
			isCompleted = true
			break
		}
	}

	return &dto.SavedAnswerStatus{
		UserAnswer:         latest.UserAnswer,
		IsCorrect:          latest.IsCorrect,
		Score:              latest.Score,
		AttemptNumber:      len(history),
		MaxAttemptsReached: len(history) >= MaxAttempts,
		IsCompleted:        isCompleted,
		AIFeedback:         latest.AIFeedback,
		AISuggestions:      latest.AISuggestions,
		RelatedConcepts:    latest.RelatedConcepts,
		SubmittedAt:        latest.CreatedAt,
	}, nil
}
