package sound_api_controller

import (
	"errors"
	"net/http"

	"github.com/echoforge/echoforge/api/controller"
	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"github.com/gin-gonic/gin"
)

type DerivationController struct {
	DerivationUsecase sound_interface.DerivationUsecase
}

func NewDerivationController(uc sound_interface.DerivationUsecase) *DerivationController {
	return &DerivationController{DerivationUsecase: uc}
}

func (c *DerivationController) DeriveVariations(ctx *gin.Context) {
	var req sound_models.DerivationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "请求体解析失败: "+err.Error())
		return
	}

	result, err := c.DerivationUsecase.DeriveVariations(ctx.Request.Context(), &req)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *DerivationController) GetLineageInfo(ctx *gin.Context) {
	params := struct {
		SoundID string `form:"sound_id" binding:"required"`
	}{
		SoundID: ctx.Query("sound_id"),
	}

	if params.SoundID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: sound_id")
		return
	}

	info, err := c.DerivationUsecase.GetLineageInfo(ctx.Request.Context(), params.SoundID)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, info)
}

func (c *DerivationController) GetAllLineages(ctx *gin.Context) {
	lineages, err := c.DerivationUsecase.GetAllLineages(ctx.Request.Context())
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "lineages", lineages, len(lineages))
}

func (c *DerivationController) GetAncestors(ctx *gin.Context) {
	params := struct {
		SoundID string `form:"sound_id" binding:"required"`
	}{
		SoundID: ctx.Query("sound_id"),
	}

	if params.SoundID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: sound_id")
		return
	}

	ancestors, err := c.DerivationUsecase.Ancestors(ctx.Request.Context(), params.SoundID)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "ancestors", ancestors, len(ancestors))
}

func (c *DerivationController) GetDescendants(ctx *gin.Context) {
	params := struct {
		SoundID string `form:"sound_id" binding:"required"`
	}{
		SoundID: ctx.Query("sound_id"),
	}

	if params.SoundID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: sound_id")
		return
	}

	descendants, err := c.DerivationUsecase.Descendants(ctx.Request.Context(), params.SoundID)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "descendants", descendants, len(descendants))
}

// respondDerivationError 域错误到HTTP状态码的映射
func respondDerivationError(ctx *gin.Context, err error) {
	var exhausted *domain.BatchExhaustedError

	switch {
	case errors.Is(err, domain.ErrValidation):
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
	case errors.Is(err, domain.ErrSoundNotFound):
		controller.ErrorResponse(ctx, http.StatusNotFound, "SOUND_NOT_FOUND", "声音记录不存在")
	case errors.Is(err, domain.ErrLineageNotFound):
		controller.ErrorResponse(ctx, http.StatusNotFound, "LINEAGE_NOT_FOUND", "谱系不存在")
	case errors.Is(err, domain.ErrLineageNodeMissing):
		controller.ErrorResponse(ctx, http.StatusNotFound, "LINEAGE_NODE_MISSING", "声音不属于任何谱系")
	case errors.As(err, &exhausted):
		controller.ErrorResponse(ctx, http.StatusBadGateway, "BATCH_EXHAUSTED", err.Error())
	case errors.Is(err, domain.ErrStoreInconsistency):
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "STORE_INCONSISTENCY", err.Error())
	default:
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
	}
}
