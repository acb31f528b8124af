package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Mastery thresholds over the mean attempt score. A low mean still lands in
// "in_progress" even though every exercise was eventually answered correctly:
// accuracy is rewarded, not just completion.
const (
	masteryThreshold   = 90.0
	completedThreshold = 70.0
)

// ErrNoAttemptsForTopic is returned when an aggregation is requested for a
// topic with no recorded attempts. Callers are expected to have checked
// AreAllExercisesCompleted first, so hitting this is a precondition violation.
var ErrNoAttemptsForTopic = errors.New("no attempts recorded for this topic")

// TopicProgressService rolls the attempt histories of a topic's exercises up
// into one completion verdict and a persisted progress record. The rollup is
// recomputed from scratch on every call (O(total attempts in the topic)), so
// the stored record is always a pure function of the attempt history.
type TopicProgressService interface {
	AreAllExercisesCompleted(userID, topicID uint) (bool, error)
	CreateTopicProgress(userID, learningPathID, topicID uint) (*dto.TopicProgressDTO, error)
	GetTopicProgress(userID, learningPathID, topicID uint) (*dto.TopicProgressDTO, bool, error)
}

type topicProgressService struct {
	exerciseRepo repository.ExerciseRepository
	attemptRepo  repository.AttemptRepository
	progressRepo repository.TopicProgressRepository
}

func NewTopicProgressService(
	exerciseRepo repository.ExerciseRepository,
	attemptRepo repository.AttemptRepository,
	progressRepo repository.TopicProgressRepository,
) TopicProgressService {
	return &topicProgressService{
		exerciseRepo: exerciseRepo,
		attemptRepo:  attemptRepo,
		progressRepo: progressRepo,
	}
}

// AreAllExercisesCompleted requires one correct attempt per active exercise.
// A topic with zero exercises is never complete, and exhausting the attempt
// cap without a correct answer leaves the exercise incomplete until it is
// regenerated.
func (s *topicProgressService) AreAllExercisesCompleted(userID, topicID uint) (bool, error) {
	exercises, err := s.exerciseRepo.FindByTopicID(topicID)
	if err != nil {
		log.Error().Err(err).Uint("topicID", topicID).Msg("AreAllExercisesCompleted: failed to load exercises")
		return false, fmt.Errorf("error loading exercises for topic %d: %w", topicID, err)
	}
	if len(exercises) == 0 {
		log.Debug().Uint("topicID", topicID).Msg("AreAllExercisesCompleted: topic has no exercises")
		return false, nil
	}

	for _, exercise := range exercises {
		attempts, err := s.attemptRepo.FindByUserAndContent(userID, exercise.ContentID)
		if err != nil {
			return false, fmt.Errorf("error loading attempts for exercise %s: %w", exercise.ContentID, err)
		}
		solved := false
		for _, a := range attempts {
			if a.IsCorrect {
				solved = true
				break
			}
		}
		if !solved {
			return false, nil
		}
	}
	return true, nil
}

// CreateTopicProgress recomputes the topic rollup from the full attempt
// history and upserts it. Calling it twice without new attempts yields the
// same stored values apart from completed_at.
func (s *topicProgressService) CreateTopicProgress(userID, learningPathID, topicID uint) (*dto.TopicProgressDTO, error) {
	exercises, err := s.exerciseRepo.FindByTopicID(topicID)
	if err != nil {
		log.Error().Err(err).Uint("topicID", topicID).Msg("CreateTopicProgress: failed to load exercises")
		return nil, fmt.Errorf("error loading exercises for topic %d: %w", topicID, err)
	}

	var allAttempts []model.Attempt
	for _, exercise := range exercises {
		attempts, err := s.attemptRepo.FindByUserAndContent(userID, exercise.ContentID)
		if err != nil {
			return nil, fmt.Errorf("error loading attempts for exercise %s: %w", exercise.ContentID, err)
		}
		allAttempts = append(allAttempts, attempts...)
	}
	if len(allAttempts) == 0 {
		log.Warn().Uint("userID", userID).Uint("topicID", topicID).Msg("CreateTopicProgress: no attempts on record")
		return nil, ErrNoAttemptsForTopic
	}

	sort.SliceStable(allAttempts, func(i, j int) bool {
		if allAttempts[i].CreatedAt.Equal(allAttempts[j].CreatedAt) {
			return allAttempts[i].ID < allAttempts[j].ID
		}
		return allAttempts[i].CreatedAt.Before(allAttempts[j].CreatedAt)
	})

	var scoreSum float64
	var scoreCount int
	var timeSpent float64
	var recentScores []float64
	for _, a := range allAttempts {
		if a.Score != nil {
			scoreSum += *a.Score
			scoreCount++
			recentScores = append(recentScores, *a.Score)
		}
		if a.ResponseTime != nil {
			timeSpent += *a.ResponseTime
		}
	}

	var meanScore float64
	if scoreCount > 0 {
		meanScore = roundToTwoDecimals(scoreSum / float64(scoreCount))
	}

	status := model.ProgressStatusInProgress
	switch {
	case meanScore >= masteryThreshold:
		status = model.ProgressStatusMastered
	case meanScore >= completedThreshold:
		status = model.ProgressStatusCompleted
	}

	startedAt := allAttempts[0].CreatedAt
	now := time.Now()
	progress := model.TopicProgress{
		UserID:         userID,
		LearningPathID: learningPathID,
		TopicID:        topicID,
		Score:          meanScore,
		Attempts:       len(allAttempts),
		TimeSpent:      timeSpent,
		RecentScores:   recentScores,
		Status:         status,
		StartedAt:      &startedAt,
		CompletedAt:    &now,
	}

	if err := s.progressRepo.Upsert(&progress); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("topicID", topicID).Msg("CreateTopicProgress: failed to upsert progress")
		return nil, fmt.Errorf("error saving topic progress: %w", err)
	}

	log.Info().
		Uint("userID", userID).
		Uint("topicID", topicID).
		Float64("score", meanScore).
		Int("attempts", len(allAttempts)).
		Str("status", status).
		Msg("Topic progress saved")

	return toTopicProgressDTO(&progress), nil
}

// GetTopicProgress returns the stored record (nil when none exists) together
// with the live completion verdict.
func (s *topicProgressService) GetTopicProgress(userID, learningPathID, topicID uint) (*dto.TopicProgressDTO, bool, error) {
	allCompleted, err := s.AreAllExercisesCompleted(userID, topicID)
	if err != nil {
		return nil, false, err
	}

	progress, err := s.progressRepo.Find(userID, learningPathID, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, allCompleted, nil
		}
		log.Error().Err(err).Uint("userID", userID).Uint("topicID", topicID).Msg("GetTopicProgress: failed to load progress")
		return nil, false, fmt.Errorf("error loading topic progress: %w", err)
	}
	return toTopicProgressDTO(progress), allCompleted, nil
}

func toTopicProgressDTO(progress *model.TopicProgress) *dto.TopicProgressDTO {
	return &dto.TopicProgressDTO{
		ID:             progress.ID,
		UserID:         progress.UserID,
		LearningPathID: progress.LearningPathID,
		TopicID:        progress.TopicID,
		Score:          progress.Score,
		Attempts:       progress.Attempts,
		TimeSpent:      progress.TimeSpent,
		RecentScores:   progress.RecentScores,
		Status:         progress.Status,
		StartedAt:      progress.StartedAt,
		CompletedAt:    progress.CompletedAt,
	}
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
