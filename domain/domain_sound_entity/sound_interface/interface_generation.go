package sound_interface

import (
	"context"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// GenerationRequest 直接生成（非派生）请求
type GenerationRequest struct {
	Prompt     string                        `json:"prompt"`
	Parameters sound_models.SoundParameters  `json:"parameters"`
	EngineID   string                        `json:"engine_id"` // 为空时由推荐逻辑决定
	Name       string                        `json:"name"`
	GroupName  string                        `json:"group_name"`
}

// GenerationUsecase 直接生成入口，产出不属于任何谱系的新声音
// （首次被派生时才会惰性建立谱系）
type GenerationUsecase interface {
	Generate(ctx context.Context, req *GenerationRequest) (*sound_models.SoundGeneration, error)
}
