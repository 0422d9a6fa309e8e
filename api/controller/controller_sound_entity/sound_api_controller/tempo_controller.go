package sound_api_controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/echoforge/echoforge/api/controller"
	"github.com/echoforge/echoforge/util/audio/audio_tempo"
	"github.com/gin-gonic/gin"
)

type TempoController struct{}

func NewTempoController() *TempoController {
	return &TempoController{}
}

// AdjustTempo 对上传的音频做变速，multipart 表单：file + target_bpm [+ estimated_bpm]
func (c *TempoController) AdjustTempo(ctx *gin.Context) {
	targetBPM, err := strconv.Atoi(ctx.PostForm("target_bpm"))
	if err != nil || targetBPM <= 0 {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "target_bpm 必须为正整数")
		return
	}

	var estimatedBPM *float64
	if raw := ctx.PostForm("estimated_bpm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "estimated_bpm 必须为正数")
			return
		}
		estimatedBPM = &parsed
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETERS", "缺少必要参数: file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	result, err := audio_tempo.AdjustTempo(&audio_tempo.TempoRequest{
		Audio:        audio,
		TargetBPM:    targetBPM,
		EstimatedBPM: estimatedBPM,
	})
	if err != nil {
		switch {
		case errors.Is(err, audio_tempo.ErrEmptyAudio),
			errors.Is(err, audio_tempo.ErrInvalidTargetBPM),
			errors.Is(err, audio_tempo.ErrUnknownFormat):
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_AUDIO", err.Error())
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "TEMPO_FAILED", err.Error())
		}
		return
	}

	filename := "tempo_adjusted." + result.Format
	if result.SourceTitle != "" {
		filename = result.SourceTitle + "_" + strconv.Itoa(targetBPM) + "bpm." + result.Format
	}

	ctx.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	ctx.Header("X-Tempo-Source-Bpm", strconv.FormatFloat(result.SourceBPM, 'f', 2, 64))
	ctx.Header("X-Tempo-Ratio", strconv.FormatFloat(result.Ratio, 'f', 6, 64))
	ctx.Data(http.StatusOK, "application/octet-stream", result.Audio)
}
