package sound_api_controller

import (
	"net/http"

	"github.com/echoforge/echoforge/api/controller"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/gin-gonic/gin"
)

type GenerationController struct {
	GenerationUsecase sound_interface.GenerationUsecase
}

func NewGenerationController(uc sound_interface.GenerationUsecase) *GenerationController {
	return &GenerationController{GenerationUsecase: uc}
}

func (c *GenerationController) Generate(ctx *gin.Context) {
	var req sound_interface.GenerationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "请求体解析失败: "+err.Error())
		return
	}

	sound, err := c.GenerationUsecase.Generate(ctx.Request.Context(), &req)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sound)
}
