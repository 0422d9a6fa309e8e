package usecase_sound_entity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/echoforge/echoforge/domain/domain_app/domain_app_config"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
)

// 级联各档的时长阈值（秒）
const (
	shortFormMaxSeconds  = 22.0
	mediumFormMaxSeconds = 30.0
)

var (
	vocalKeywords = []string{
		"vocal", "voice", "sing", "singing", "choir", "speech", "spoken",
		"chant", "acapella", "humming", "whisper",
	}
	percussionKeywords = []string{
		"drum", "percussion", "kick", "snare", "hi-hat", "hihat", "beat",
		"rhythm", "loop", "groove",
	}
	rhythmKeywords = []string{
		"bpm", "tempo", "beat", "rhythm", "groove", "loop",
	}
	sfxKeywords = []string{
		"sfx", "effect", "impact", "whoosh", "riser", "sweep",
		"footstep", "foley",
	}
	ambienceKeywords = []string{
		"ambience", "ambient", "atmosphere", "drone", "texture", "pad",
		"soundscape", "background",
	}

	bpmDigitsPattern = regexp.MustCompile(`\b\d{2,3}\b`)
)

// selectionRule 级联中的一档：命中条件之外，候选链按优先级排列
// 整链不可用时落空到下一档，而不是报错
type selectionRule struct {
	name       string
	candidates []string
}

// engineSelectionUsecase 按规则级联推荐合成引擎
// 纯函数：同一提示词、时长、参考音频标记与可用集合必然得到同一结果
type engineSelectionUsecase struct {
	configUsecase domain_app_config.AppEngineConfigUsecase
	timeout       time.Duration
}

func NewEngineSelectionUsecase(
	configUsecase domain_app_config.AppEngineConfigUsecase,
	timeout time.Duration,
) sound_interface.EngineSelectionUsecase {
	return &engineSelectionUsecase{
		configUsecase: configUsecase,
		timeout:       timeout,
	}
}

func (uc *engineSelectionUsecase) Recommend(
	ctx context.Context,
	prompt string,
	durationSeconds float64,
	hasReferenceAudio bool,
) (*sound_interface.EngineRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	config, err := uc.configUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(config.AvailableEngines))
	for _, engine := range config.AvailableEngines {
		available[engine] = true
	}

	rules := buildCascade(prompt, durationSeconds, hasReferenceAudio, config.DefaultEngine)

	// 严格自上而下求值，候选链整体不可用即落空到下一档
	for _, rule := range rules {
		for _, candidate := range rule.candidates {
			if available[candidate] {
				return &sound_interface.EngineRecommendation{
					EngineID: candidate,
					Rule:     rule.name,
				}, nil
			}
		}
	}

	// 可用集合为空时的终极回退：返回默认引擎本身
	return &sound_interface.EngineRecommendation{
		EngineID: config.DefaultEngine,
		Rule:     "default",
	}, nil
}

// buildCascade 构造本次输入命中的规则序列（含各自回退链）
func buildCascade(prompt string, durationSeconds float64, hasReferenceAudio bool, defaultEngine string) []selectionRule {
	lowered := strings.ToLower(prompt)
	rules := make([]selectionRule, 0, 7)

	// (1) 人声/语音
	if containsAny(lowered, vocalKeywords) {
		rules = append(rules, selectionRule{
			name: "vocal",
			candidates: []string{
				domain_app_config.EngineBark,
				domain_app_config.EngineElevenVoice,
			},
		})
	}

	// (2) 打击乐 + 明确节拍（数字 BPM 或节奏关键词），按时长分档
	if containsAny(lowered, percussionKeywords) &&
		(bpmDigitsPattern.MatchString(lowered) || containsAny(lowered, rhythmKeywords)) {
		rules = append(rules, selectionRule{
			name:       "percussion_bpm",
			candidates: durationBucket(durationSeconds),
		})
	}

	// (3) 携带参考音频
	if hasReferenceAudio {
		rules = append(rules, selectionRule{
			name: "reference_audio",
			candidates: []string{
				domain_app_config.EngineRiffusion,
				domain_app_config.EngineMusicGenMedium,
			},
		})
	}

	// (4) 音效/打击乐但无明确节拍
	if containsAny(lowered, sfxKeywords) || containsAny(lowered, percussionKeywords) {
		candidates := []string{domain_app_config.EngineAudioGen, domain_app_config.EngineMusicGenSmall}
		if durationSeconds > shortFormMaxSeconds {
			candidates = []string{domain_app_config.EngineMusicGenSmall, domain_app_config.EngineAudioGen}
		}
		rules = append(rules, selectionRule{
			name:       "sfx",
			candidates: candidates,
		})
	}

	// (5) 氛围/织体
	if containsAny(lowered, ambienceKeywords) {
		rules = append(rules, selectionRule{
			name: "ambience",
			candidates: []string{
				domain_app_config.EngineAudioLDM,
				domain_app_config.EngineStableAudio,
				domain_app_config.EngineMusicGenMedium,
			},
		})
	}

	// (6) 长时长
	if durationSeconds > mediumFormMaxSeconds {
		rules = append(rules, selectionRule{
			name: "long_form",
			candidates: []string{
				domain_app_config.EngineStableAudio,
				domain_app_config.EngineMusicGenLarge,
			},
		})
	}

	// (7) 兜底：通用器乐引擎
	rules = append(rules, selectionRule{
		name: "default",
		candidates: []string{
			defaultEngine,
			domain_app_config.EngineMusicGenMedium,
			domain_app_config.EngineMusicGenSmall,
		},
	})

	return rules
}

// durationBucket 打击乐的三段时长分档，每档带自身回退链
func durationBucket(durationSeconds float64) []string {
	switch {
	case durationSeconds <= shortFormMaxSeconds:
		return []string{
			domain_app_config.EngineMusicGenSmall,
			domain_app_config.EngineMusicGenMedium,
			domain_app_config.EngineAudioGen,
		}
	case durationSeconds <= mediumFormMaxSeconds:
		return []string{
			domain_app_config.EngineMusicGenMedium,
			domain_app_config.EngineMusicGenLarge,
			domain_app_config.EngineMusicGenSmall,
		}
	}
	return []string{
		domain_app_config.EngineMusicGenLarge,
		domain_app_config.EngineStableAudio,
		domain_app_config.EngineMusicGenMedium,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
