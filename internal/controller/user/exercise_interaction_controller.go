package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
)

type ExerciseInteractionController struct {
	interactionService service.ExerciseInteractionService
}

func NewExerciseInteractionController(interactionService service.ExerciseInteractionService) *ExerciseInteractionController {
	return &ExerciseInteractionController{interactionService: interactionService}
}

// SubmitInteraction godoc
// @Summary (User) Submit an answer for an exercise
// @Description Records one attempt for an exercise instance. Closed-form types carry the client-computed correctness; coding exercises are graded by the AI judge. Rejected when the exercise is completed or the 3-attempt cap is reached.
// @Tags User - Exercise Interactions
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswerRequest true "Answer submission"
// @Success 200 {object} dto.SubmitAnswerResult
// @Failure 400 {object} dto.SubmitAnswerResult "Guard rejection (already completed / attempt cap)"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exercises/interactions [post]
func (c *ExerciseInteractionController) SubmitInteraction(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitInteraction: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	// Closed-form types are graded upstream, so the grading inputs must be present.
	if req.ExerciseType != model.ExerciseTypeCoding {
		if req.CorrectAnswer == "" || req.IsCorrect == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "correct_answer and is_correct are required for non-coding exercise types"})
			return
		}
	}

	log.Info().
		Uint("userID", req.UserID).
		Str("contentID", req.ContentID).
		Str("exerciseType", req.ExerciseType).
		Msg("Received answer submission")

	result, err := c.interactionService.SubmitAnswer(req)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Str("contentID", req.ContentID).Msg("SubmitInteraction: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit answer", Details: []string{err.Error()}})
		return
	}
	if !result.Success {
		ctx.JSON(http.StatusBadRequest, result)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetInteractionStatus godoc
// @Summary (User) Get saved answer status for an exercise
// @Description Returns the latest attempt plus aggregate counters for one exercise instance, keyed by exercise id. Empty data when no attempt exists yet.
// @Tags User - Exercise Interactions
// @Produce json
// @Param user_id query int true "User ID"
// @Param content_id query string true "Exercise content ID"
// @Param exercise_id query string false "Exercise ID used as the response map key (defaults to content_id)"
// @Success 200 {object} dto.InteractionStatusResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exercises/interactions [get]
func (c *ExerciseInteractionController) GetInteractionStatus(ctx *gin.Context) {
	userIDStr := ctx.Query("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id query parameter"})
		return
	}

	contentID := ctx.Query("content_id")
	if contentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "content_id query parameter is required"})
		return
	}

	key := ctx.Query("exercise_id")
	if key == "" {
		key = contentID
	}

	status, err := c.interactionService.GetLatestStatus(uint(userID), contentID)
	if err != nil {
		log.Error().Err(err).Uint64("userID", userID).Str("contentID", contentID).Msg("GetInteractionStatus: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve answer status", Details: []string{err.Error()}})
		return
	}

	resp := dto.InteractionStatusResponse{Success: true, Data: map[string]dto.SavedAnswerStatus{}}
	if status != nil {
		resp.Data[key] = *status
	}
	ctx.JSON(http.StatusOK, resp)
}
