package sound_interface

import (
	"context"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// SynthesisRepository 外部合成协作方的单一能力
// 任何失败（瞬时或永久）对编排层而言都只意味着"该变体失败"
type SynthesisRepository interface {
	Generate(
		ctx context.Context,
		engineId, prompt string,
		params sound_models.SoundParameters,
	) (*sound_models.SynthesisResult, error)
}
