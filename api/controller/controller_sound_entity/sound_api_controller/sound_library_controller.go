package sound_api_controller

import (
	"net/http"
	"strings"

	"github.com/echoforge/echoforge/api/controller"
	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/gin-gonic/gin"
)

type SoundLibraryController struct {
	LibraryUsecase sound_interface.SoundLibraryUsecase
}

func NewSoundLibraryController(uc sound_interface.SoundLibraryUsecase) *SoundLibraryController {
	return &SoundLibraryController{LibraryUsecase: uc}
}

func (c *SoundLibraryController) GetSoundItems(ctx *gin.Context) {
	params := struct {
		Start     string   `form:"start" binding:"required"`
		End       string   `form:"end" binding:"required"`
		Search    string   `form:"search"`
		GroupName string   `form:"group_name"`
		SoundType string   `form:"sound_type"`
		Status    string   `form:"status"`
		Sort      []string `form:"sort"` // 格式: "field:order"
	}{
		Start:     ctx.Query("start"),
		End:       ctx.Query("end"),
		Search:    ctx.Query("search"),
		GroupName: ctx.Query("group_name"),
		SoundType: ctx.Query("sound_type"),
		Status:    ctx.Query("status"),
		Sort:      ctx.QueryArray("sort"),
	}

	if params.Start == "" || params.End == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: start, end")
		return
	}

	// 解析排序参数
	sortOrders := make([]domain.SortOrder, 0, len(params.Sort))
	for _, s := range params.Sort {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_SORT_FORMAT", "sort parameter must be in field:order format")
			return
		}
		sortOrders = append(sortOrders, domain.SortOrder{
			Sort:  parts[0],
			Order: parts[1],
		})
	}

	sounds, err := c.LibraryUsecase.GetSoundItems(
		ctx.Request.Context(),
		params.Start,
		params.End,
		sortOrders,
		params.Search,
		params.GroupName,
		params.SoundType,
		params.Status,
	)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "sounds", sounds, len(sounds))
}

func (c *SoundLibraryController) GetSoundDetail(ctx *gin.Context) {
	params := struct {
		SoundID string `form:"sound_id" binding:"required"`
	}{
		SoundID: ctx.Query("sound_id"),
	}

	if params.SoundID == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: sound_id")
		return
	}

	sound, err := c.LibraryUsecase.GetByID(ctx.Request.Context(), params.SoundID)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sound)
}

func (c *SoundLibraryController) UpdateMetadata(ctx *gin.Context) {
	var req struct {
		SoundID   string `form:"sound_id" binding:"required"`
		Name      string `form:"name"`
		GroupName string `form:"group_name"`
	}

	if err := ctx.ShouldBind(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: sound_id")
		return
	}

	updated, err := c.LibraryUsecase.UpdateMetadata(ctx.Request.Context(), req.SoundID, req.Name, req.GroupName)
	if err != nil {
		respondDerivationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}
