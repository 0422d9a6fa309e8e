package sound_interface

import "context"

// EngineRecommendation 推荐结果及命中的规则描述
type EngineRecommendation struct {
	EngineID string `json:"engine_id"`
	Rule     string `json:"rule"` // 命中的级联规则名（如 vocal、percussion_bpm）
}

// EngineSelectionUsecase 合成引擎推荐：纯函数级联
// 相同输入与相同可用引擎集合必然给出相同推荐
type EngineSelectionUsecase interface {
	Recommend(
		ctx context.Context,
		prompt string,
		durationSeconds float64,
		hasReferenceAudio bool,
	) (*EngineRecommendation, error)
}
