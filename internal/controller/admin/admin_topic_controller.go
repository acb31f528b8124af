package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTopicController struct {
	adminTopicService service.AdminTopicService
}

func NewAdminTopicController(adminTopicService service.AdminTopicService) *AdminTopicController {
	return &AdminTopicController{adminTopicService: adminTopicService}
}

// CreateTopic godoc
// @Summary (Admin) Create a new topic with its exercises
// @Description Creates a topic under a learning path, optionally with its generated exercises in the same call.
// @Tags Admin - Topics
// @Accept json
// @Produce json
// @Param topic body dto.TopicCreateDTO true "Topic data including optional exercises"
// @Success 201 {object} dto.TopicResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/topics [post]
func (c *AdminTopicController) CreateTopic(ctx *gin.Context) {
	var req dto.TopicCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind TopicCreateDTO")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	orders := make(map[int]bool)
	for _, e := range req.Exercises {
		if orders[e.OrderInTopic] {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Duplicate OrderInTopic %d for exercises.", e.OrderInTopic)})
			return
		}
		orders[e.OrderInTopic] = true

		if e.Type == model.ExerciseTypeCoding && e.EvaluationCriteria == "" {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Exercise '%s' (type coding) requires evaluation_criteria.", e.Title)})
			return
		}
	}

	topicResp, err := c.adminTopicService.CreateTopic(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create topic")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create topic: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, topicResp)
}
