package sound_api_controller

import (
	"net/http"
	"strconv"

	"github.com/echoforge/echoforge/api/controller"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/gin-gonic/gin"
)

type EngineSelectionController struct {
	EngineSelectionUsecase sound_interface.EngineSelectionUsecase
}

func NewEngineSelectionController(uc sound_interface.EngineSelectionUsecase) *EngineSelectionController {
	return &EngineSelectionController{EngineSelectionUsecase: uc}
}

func (c *EngineSelectionController) Recommend(ctx *gin.Context) {
	params := struct {
		Prompt            string `form:"prompt"`
		Duration          string `form:"duration"`
		HasReferenceAudio string `form:"has_reference_audio"`
	}{
		Prompt:            ctx.Query("prompt"),
		Duration:          ctx.DefaultQuery("duration", "0"),
		HasReferenceAudio: ctx.DefaultQuery("has_reference_audio", "false"),
	}

	duration, err := strconv.ParseFloat(params.Duration, 64)
	if err != nil || duration < 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "duration 必须为非负数")
		return
	}

	hasReference := params.HasReferenceAudio == "true"

	recommendation, err := c.EngineSelectionUsecase.Recommend(ctx.Request.Context(), params.Prompt, duration, hasReference)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	ctx.JSON(http.StatusOK, recommendation)
}
