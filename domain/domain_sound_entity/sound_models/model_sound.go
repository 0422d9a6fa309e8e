package sound_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SoundType 声音类别（提示词的语义分类）
type SoundType string

const (
	SoundTypeFX         SoundType = "fx"
	SoundTypeAmbience   SoundType = "ambience"
	SoundTypeUI         SoundType = "ui"
	SoundTypeFoley      SoundType = "foley"
	SoundTypeMelody     SoundType = "melody"
	SoundTypeBass       SoundType = "bass"
	SoundTypePercussion SoundType = "percussion"
)

// Valid 是否为已知的声音类别
func (t SoundType) Valid() bool {
	switch t {
	case SoundTypeFX, SoundTypeAmbience, SoundTypeUI, SoundTypeFoley,
		SoundTypeMelody, SoundTypeBass, SoundTypePercussion:
		return true
	}
	return false
}

// GenerationStatus 生成记录的生命周期状态
type GenerationStatus string

const (
	StatusPending GenerationStatus = "pending"
	StatusReady   GenerationStatus = "ready"
	StatusError   GenerationStatus = "error"
)

// 数值参数边界
const (
	ScaleMin      = 0   // intensity/texture/noisiness 下界
	ScaleMax      = 100 // intensity/texture/noisiness 上界
	BrightnessMin = -1.0
	BrightnessMax = 1.0
)

// SoundParameters 语义化声音参数向量，生成完成后不可变
type SoundParameters struct {
	Type          SoundType `bson:"type" json:"type"`                     // 声音类别（如 fx、ambience 等）
	Intensity     int       `bson:"intensity" json:"intensity"`           // 强度（0-100）
	Texture       int       `bson:"texture" json:"texture"`               // 质感（0-100）
	Brightness    float64   `bson:"brightness" json:"brightness"`         // 明亮度（-1 至 1，有符号刻度）
	Noisiness     int       `bson:"noisiness" json:"noisiness"`           // 噪声成分（0-100）
	MoodTags      []string  `bson:"mood_tags" json:"mood_tags"`           // 心情标签（有序、去重）
	LengthSeconds float64   `bson:"length_seconds" json:"length_seconds"` // 目标时长（秒，正数）
	BPM           *int      `bson:"bpm,omitempty" json:"bpm,omitempty"`   // 节拍速度（可选，正整数）
	Key           string    `bson:"key,omitempty" json:"key,omitempty"`   // 调式（可选，如 "C minor"）
	Seed          *int64    `bson:"seed,omitempty" json:"seed,omitempty"` // 随机种子（可选，可复现性凭据）
}

// SoundGeneration 单次生成的声音记录
// 状态进入 ready/error 后除媒体库元数据（名称、分组）外不再变更
type SoundGeneration struct {
	ID           primitive.ObjectID `bson:"_id"`                              // 文档唯一标识符
	Prompt       string             `bson:"prompt"`                           // 生成提示词全文
	CreatedAt    time.Time          `bson:"created_at"`                       // 记录创建时间
	UpdatedAt    time.Time          `bson:"updated_at"`                       // 记录最后更新时间
	Parameters   SoundParameters    `bson:"parameters"`                       // 生成参数向量
	AudioURL     string             `bson:"audio_url"`                        // 合成成功后的音频地址
	Status       GenerationStatus   `bson:"status"`                          // 生成状态（pending/ready/error）
	ProvenanceID string             `bson:"provenance_id,omitempty"`          // 合成服务返回的溯源凭据（可选）
	EngineID     string             `bson:"engine_id,omitempty"`              // 实际使用的合成引擎
	VariantOfID  primitive.ObjectID `bson:"variant_of_id,omitempty"`          // 派生来源声音的弱引用（仅关系，非从属）

	// 媒体库元数据（由媒体库侧独立维护，可在终态后修改）
	Name       string   `bson:"name"`        // 展示名称
	GroupName  string   `bson:"group_name"`  // 所属分组
	NamePinyin []string `bson:"name_pinyin"` // 名称的拼音表示（用于搜索和排序）
}
