package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTopicService interface {
	CreateTopic(req dto.TopicCreateDTO) (*dto.TopicResponseDTO, error)
}

type adminTopicService struct {
	topicRepo repository.TopicRepository
}

func NewAdminTopicService(topicRepo repository.TopicRepository) AdminTopicService {
	return &adminTopicService{topicRepo: topicRepo}
}

func (s *adminTopicService) CreateTopic(req dto.TopicCreateDTO) (*dto.TopicResponseDTO, error) {
	orderMap := make(map[int]bool)
	var exercisesToCreate []model.Exercise

	for _, eDto := range req.Exercises {
		if orderMap[eDto.OrderInTopic] {
			return nil, fmt.Errorf("duplicate OrderInTopic %d found in exercises", eDto.OrderInTopic)
		}
		orderMap[eDto.OrderInTopic] = true

		// Grading material depends on the type: coding exercises are judged
		// against criteria, everything else against an exact answer.
		if eDto.Type == model.ExerciseTypeCoding {
			if eDto.EvaluationCriteria == "" {
				return nil, fmt.Errorf("exercise '%s' of type 'coding' requires EvaluationCriteria", eDto.Title)
			}
		} else {
			if eDto.CorrectAnswer == "" {
				return nil, fmt.Errorf("exercise '%s' of type '%s' requires CorrectAnswer", eDto.Title, eDto.Type)
			}
		}

		var exerciseModel model.Exercise
		copier.Copy(&exerciseModel, &eDto)
		if exerciseModel.ContentID == "" {
			exerciseModel.ContentID = uuid.NewString()
		}
		exercisesToCreate = append(exercisesToCreate, exerciseModel)
	}

	topicModel := model.Topic{
		LearningPathID: req.LearningPathID,
		Title:          req.Title,
		Description:    req.Description,
		Exercises:      exercisesToCreate,
	}

	if err := s.topicRepo.Create(&topicModel); err != nil {
		log.Error().Err(err).Msg("Failed to create topic in database")
		return nil, fmt.Errorf("database error creating topic: %w", err)
	}

	createdTopic, err := s.topicRepo.FindByIDWithExercises(topicModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("topicID", topicModel.ID).Msg("Failed to reload newly created topic with exercises")
		var fallbackResp dto.TopicResponseDTO
		copier.Copy(&fallbackResp, &topicModel)
		return &fallbackResp, nil
	}

	var resp dto.TopicResponseDTO
	if err := copier.Copy(&resp, createdTopic); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Topic model to TopicResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
