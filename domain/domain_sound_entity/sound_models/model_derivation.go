package sound_models

// ParameterShifts parameter_shift 策略的逐字段位移幅度
// 第 i 个变体施加 shift * (i / max(total-1, 1))，total=1 时施加全幅
type ParameterShifts struct {
	Intensity  int     `json:"intensity"`  // 强度位移（可为负）
	Texture    int     `json:"texture"`    // 质感位移
	Brightness float64 `json:"brightness"` // 明亮度位移
	Noisiness  int     `json:"noisiness"`  // 噪声位移
	BPM        int     `json:"bpm"`        // 节拍位移
}

// DerivationRequest 一次批量派生请求
type DerivationRequest struct {
	ParentSoundID string        `json:"parent_sound_id"` // 派生来源声音
	VariationType VariationType `json:"variation_type"`  // 派生类型
	Count         int           `json:"count"`           // 请求的变体数量（1-10）
	EngineID      string        `json:"engine_id"`       // 指定合成引擎（为空时走推荐）

	// 各策略专属配置
	ParameterShifts   *ParameterShifts `json:"parameter_shifts,omitempty"`    // parameter_shift 专用
	EvolutionStrength float64          `json:"evolution_strength,omitempty"`  // evolve 专用（0.1-0.5）
	MutationRate      float64          `json:"mutation_rate,omitempty"`       // mutate 专用（0.1-0.7）
	PreserveCore      bool             `json:"preserve_core,omitempty"`       // mutate 专用：锁定强度与 BPM
	CombineWithID     string           `json:"combine_with_id,omitempty"`     // combine 专用：第二来源声音
	StyleText         string           `json:"style_text,omitempty"`          // style_transfer 专用：目标风格描述
}

// DerivationResult 批量派生的聚合结果
// 只要至少一个变体成功，整批即视为成功，Produced 可以小于 Requested
type DerivationResult struct {
	Sounds     []SoundGeneration `json:"sounds"`     // 成功创建的变体记录
	LineageID  string            `json:"lineage_id"` // 所属谱系
	Generation int               `json:"generation"` // 本批所有变体共享的代数
	Requested  int               `json:"requested"`  // 请求数量
	Produced   int               `json:"produced"`   // 实际产出数量
}

// SynthesisResult 外部合成服务的返回值
type SynthesisResult struct {
	AudioURL     string `json:"audio_url"`               // 合成音频地址
	ProvenanceID string `json:"provenance_id,omitempty"` // 溯源凭据（可选）
}

// LineageInfo 谱系检视响应：谱系、被查询节点及其祖先/后代
type LineageInfo struct {
	Lineage     Lineage     `json:"lineage"`
	Node        LineageNode `json:"node"`
	Ancestors   []string    `json:"ancestors"`   // 祖先声音ID，由近及远
	Descendants []string    `json:"descendants"` // 后代声音ID，广度优先序
}
