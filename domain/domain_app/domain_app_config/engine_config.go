package domain_app_config

import (
	"time"

	"github.com/echoforge/echoforge/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 固定的合成引擎候选集，推荐级联在此集合内做排序选择
const (
	EngineBark           = "bark"            // 人声/语音特化
	EngineElevenVoice    = "eleven_voice"    // 人声备选
	EngineMusicGenSmall  = "musicgen_small"  // 短时长乐器（≤22s）
	EngineMusicGenMedium = "musicgen_medium" // 中时长乐器（22-30s），默认通用引擎
	EngineMusicGenLarge  = "musicgen_large"  // 高保真乐器
	EngineAudioGen       = "audiogen"        // 音效（SFX）特化
	EngineRiffusion      = "riffusion"       // 参考音频重采样
	EngineStableAudio    = "stable_audio"    // 长时长（>30s）
	EngineAudioLDM       = "audioldm"        // 氛围/质感纹理
)

// AppEngineConfig 引擎可用性配置，整库仅维护单份文档
type AppEngineConfig struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	AvailableEngines []string           `bson:"available_engines"` // 当前可用的引擎列表
	DefaultEngine    string             `bson:"default_engine"`    // 级联全部落空时的兜底引擎
	UpdatedAt        time.Time          `bson:"updated_at"`
}

// DefaultAppEngineConfig 初始配置：全部引擎可用
func DefaultAppEngineConfig() *AppEngineConfig {
	return &AppEngineConfig{
		AvailableEngines: []string{
			EngineBark, EngineElevenVoice,
			EngineMusicGenSmall, EngineMusicGenMedium, EngineMusicGenLarge,
			EngineAudioGen, EngineRiffusion, EngineStableAudio, EngineAudioLDM,
		},
		DefaultEngine: EngineMusicGenMedium,
	}
}

// AppEngineConfigUsecase defines the usecase interface for engine configuration.
// It embeds the generic ConfigUsecase to provide single-document semantics.
type AppEngineConfigUsecase interface {
	usecase.ConfigUsecase[AppEngineConfig]
}
