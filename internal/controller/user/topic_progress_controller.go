package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
)

type TopicProgressController struct {
	progressService service.TopicProgressService
	topicService    service.TopicService
}

func NewTopicProgressController(progressService service.TopicProgressService, topicService service.TopicService) *TopicProgressController {
	return &TopicProgressController{progressService: progressService, topicService: topicService}
}

// CreateTopicProgress godoc
// @Summary (User) Save topic progress
// @Description Recomputes the topic rollup from the full attempt history and saves it. Only allowed once every exercise in the topic has a correct attempt.
// @Tags User - Topic Progress
// @Accept json
// @Produce json
// @Param progress body dto.TopicProgressCreateRequest true "User, learning path and topic identifiers"
// @Success 200 {object} dto.TopicProgressResponse
// @Failure 400 {object} dto.ErrorResponse "Not all exercises completed, or no attempts on record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /progress/topic [post]
func (c *TopicProgressController) CreateTopicProgress(ctx *gin.Context) {
	var req dto.TopicProgressCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTopicProgress: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	allCompleted, err := c.progressService.AreAllExercisesCompleted(req.UserID, req.TopicID)
	if err != nil {
		log.Error().Err(err).Uint("topicID", req.TopicID).Msg("CreateTopicProgress: completion check failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to verify topic completion", Details: []string{err.Error()}})
		return
	}
	if !allCompleted {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Not all exercises in this topic are completed"})
		return
	}

	progress, err := c.progressService.CreateTopicProgress(req.UserID, req.LearningPathID, req.TopicID)
	if err != nil {
		if errors.Is(err, service.ErrNoAttemptsForTopic) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No attempts recorded for this topic"})
			return
		}
		log.Error().Err(err).Uint("topicID", req.TopicID).Msg("CreateTopicProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save topic progress", Details: []string{err.Error()}})
		return
	}

	ctx.JSON(http.StatusOK, dto.TopicProgressResponse{Success: true, Data: progress, AllExercisesCompleted: true})
}

// GetTopicProgress godoc
// @Summary (User) Get topic progress
// @Description Returns the stored progress record (null when none) plus the live completion flag for the topic.
// @Tags User - Topic Progress
// @Produce json
// @Param user_id query int true "User ID"
// @Param learning_path_id query int true "Learning Path ID"
// @Param topic_id query int true "Topic ID"
// @Success 200 {object} dto.TopicProgressResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /progress/topic [get]
func (c *TopicProgressController) GetTopicProgress(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id query parameter"})
		return
	}
	learningPathID, err := strconv.ParseUint(ctx.Query("learning_path_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing learning_path_id query parameter"})
		return
	}
	topicID, err := strconv.ParseUint(ctx.Query("topic_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing topic_id query parameter"})
		return
	}

	progress, allCompleted, err := c.progressService.GetTopicProgress(uint(userID), uint(learningPathID), uint(topicID))
	if err != nil {
		log.Error().Err(err).Uint64("topicID", topicID).Msg("GetTopicProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve topic progress", Details: []string{err.Error()}})
		return
	}

	ctx.JSON(http.StatusOK, dto.TopicProgressResponse{Success: true, Data: progress, AllExercisesCompleted: allCompleted})
}

// GetTopicExercises godoc
// @Summary (User) List exercises for a topic
// @Description Returns the topic's active exercises without answer material.
// @Tags User - Topics
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Success 200 {array} dto.ExerciseResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Topic ID format"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /topics/{topic_id}/exercises [get]
func (c *TopicProgressController) GetTopicExercises(ctx *gin.Context) {
	topicIDStr := ctx.Param("topic_id")
	topicID, err := strconv.ParseUint(topicIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Topic ID format"})
		return
	}

	exercises, err := c.topicService.GetTopicExercises(uint(topicID))
	if err != nil {
		log.Warn().Err(err).Uint64("topicID", topicID).Msg("GetTopicExercises: topic not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, exercises)
}
