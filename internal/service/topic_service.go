package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
)

// TopicService serves the user-facing exercise listing. Answer material never
// crosses this boundary; grading inputs travel through the submission flow.
type TopicService interface {
	GetTopicExercises(topicID uint) ([]dto.ExerciseResponseDTO, error)
}

type topicService struct {
	topicRepo    repository.TopicRepository
	exerciseRepo repository.ExerciseRepository
}

func NewTopicService(topicRepo repository.TopicRepository, exerciseRepo repository.ExerciseRepository) TopicService {
	return &topicService{topicRepo: topicRepo, exerciseRepo: exerciseRepo}
}

func (s *topicService) GetTopicExercises(topicID uint) ([]dto.ExerciseResponseDTO, error) {
	if _, err := s.topicRepo.FindByID(topicID); err != nil {
		log.Warn().Err(err).Uint("topicID", topicID).Msg("GetTopicExercises: topic not found")
		return nil, fmt.Errorf("topic not found with ID %d: %w", topicID, err)
	}

	exercises, err := s.exerciseRepo.FindByTopicID(topicID)
	if err != nil {
		log.Error().Err(err).Uint("topicID", topicID).Msg("GetTopicExercises: failed to load exercises")
		return nil, fmt.Errorf("error fetching exercises for topic %d: %w", topicID, err)
	}

	dtos := make([]dto.ExerciseResponseDTO, 0, len(exercises))
	for _, exercise := range exercises {
		var eDto dto.ExerciseResponseDTO
		if err := copier.Copy(&eDto, &exercise); err != nil {
			log.Error().Err(err).Uint("exerciseID", exercise.ID).Msg("GetTopicExercises: error copying exercise to DTO")
			continue
		}
		dtos = append(dtos, eDto)
	}
	return dtos, nil
}
