package usecase_sound_entity

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// strategyOutput 单个变体的策略产物：覆盖后的完整参数向量与提示词后缀
// 策略从不修改父记录，未触碰的字段保持父值
type strategyOutput struct {
	Params       sound_models.SoundParameters
	PromptSuffix string
}

// variationStrategy 封闭的策略分派器，每种派生类型一个分支
// parameter_shift/evolve/combine 在批内按索引线性推进，mutate 每个变体独立随机
type variationStrategy struct {
	req         *sound_models.DerivationRequest
	parent      *sound_models.SoundGeneration
	combineWith *sound_models.SoundGeneration // 仅 combine 使用
}

func newVariationStrategy(
	req *sound_models.DerivationRequest,
	parent *sound_models.SoundGeneration,
	combineWith *sound_models.SoundGeneration,
) *variationStrategy {
	return &variationStrategy{
		req:         req,
		parent:      parent,
		combineWith: combineWith,
	}
}

// Apply 计算第 i 个变体（共 total 个）的策略输出
func (s *variationStrategy) Apply(i, total int) (*strategyOutput, error) {
	switch s.req.VariationType {
	case sound_models.VariationParameterShift:
		return s.applyParameterShift(i, total), nil
	case sound_models.VariationEvolve:
		return s.applyEvolve(i, total), nil
	case sound_models.VariationMutate:
		return s.applyMutate(i), nil
	case sound_models.VariationCombine:
		return s.applyCombine(i, total), nil
	case sound_models.VariationStyleTransfer:
		return s.applyStyleTransfer(), nil
	}
	return nil, fmt.Errorf("unrecognized variation type: %s", s.req.VariationType)
}

// variationRamp 批内线性推进系数：i / max(total-1, 1)
// total=1 时取全幅 1.0（防除零保护取 1.0 而非 0.0）
func variationRamp(i, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return float64(i) / float64(total-1)
}

// combineRatio 混合比例：total=1 时取均衡 0.5，否则 0 至 1 均匀铺开
func combineRatio(i, total int) float64 {
	if total <= 1 {
		return 0.5
	}
	return float64(i) / float64(total-1)
}

func (s *variationStrategy) applyParameterShift(i, total int) *strategyOutput {
	shifts := s.req.ParameterShifts
	ramp := variationRamp(i, total)

	params := s.parent.Parameters
	params.Intensity = clampScale(params.Intensity + int(math.Round(float64(shifts.Intensity)*ramp)))
	params.Texture = clampScale(params.Texture + int(math.Round(float64(shifts.Texture)*ramp)))
	params.Brightness = clampBrightness(params.Brightness + shifts.Brightness*ramp)
	params.Noisiness = clampScale(params.Noisiness + int(math.Round(float64(shifts.Noisiness)*ramp)))
	if params.BPM != nil && shifts.BPM != 0 {
		shifted := clampBPM(*params.BPM + int(math.Round(float64(shifts.BPM)*ramp)))
		params.BPM = &shifted
	}

	return &strategyOutput{
		Params:       params,
		PromptSuffix: "with adjusted parameters",
	}
}

// evolve 各字段的发散跨度，随 strength*phase 单调增长
const (
	evolveIntensitySpan  = 30
	evolveTextureSpan    = 25
	evolveBrightnessSpan = 0.6
	evolveNoisinessSpan  = 20
)

func (s *variationStrategy) applyEvolve(i, total int) *strategyOutput {
	phase := variationRamp(i, total)
	divergence := s.req.EvolutionStrength * phase

	params := s.parent.Parameters
	params.Intensity = clampScale(params.Intensity + int(math.Round(divergence*evolveIntensitySpan)))
	params.Texture = clampScale(params.Texture - int(math.Round(divergence*evolveTextureSpan)))
	params.Brightness = clampBrightness(params.Brightness + divergence*evolveBrightnessSpan)
	params.Noisiness = clampScale(params.Noisiness + int(math.Round(divergence*evolveNoisinessSpan)))

	var suffix string
	switch {
	case phase < 0.3:
		suffix = "subtle evolution, early stage"
	case phase < 0.7:
		suffix = "mid evolution, developing"
	default:
		suffix = "evolved form, refined"
	}

	return &strategyOutput{
		Params:       params,
		PromptSuffix: suffix,
	}
}

func (s *variationStrategy) applyMutate(i int) *strategyOutput {
	rate := s.req.MutationRate
	rng := s.mutationRand(i)

	params := s.parent.Parameters
	params.Texture = clampScale(params.Texture + perturbScale(rng, rate))
	params.Brightness = clampBrightness(params.Brightness + (rng.Float64()*2-1)*rate)
	params.Noisiness = clampScale(params.Noisiness + perturbScale(rng, rate))

	// preserveCore 锁定强度与 BPM 于父值
	if !s.req.PreserveCore {
		params.Intensity = clampScale(params.Intensity + perturbScale(rng, rate))
		if params.BPM != nil {
			shifted := clampBPM(*params.BPM + int(math.Round((rng.Float64()*2-1)*rate*40)))
			params.BPM = &shifted
		}
	}

	return &strategyOutput{
		Params:       params,
		PromptSuffix: "experimental mutation, unexpected elements",
	}
}

// mutationRand 父记录带种子时按 种子+索引 播种以便复现，否则取熵源
func (s *variationStrategy) mutationRand(i int) *rand.Rand {
	if seed := s.parent.Parameters.Seed; seed != nil {
		return rand.New(rand.NewSource(*seed + int64(i)))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))
}

func perturbScale(rng *rand.Rand, rate float64) int {
	return int(math.Round((rng.Float64()*2 - 1) * rate * 50))
}

func (s *variationStrategy) applyCombine(i, total int) *strategyOutput {
	ratio := combineRatio(i, total)
	a := s.parent.Parameters
	b := s.combineWith.Parameters

	params := a
	params.Intensity = clampScale(lerpInt(a.Intensity, b.Intensity, ratio))
	params.Texture = clampScale(lerpInt(a.Texture, b.Texture, ratio))
	params.Brightness = clampBrightness(lerpFloat(a.Brightness, b.Brightness, ratio))
	params.Noisiness = clampScale(lerpInt(a.Noisiness, b.Noisiness, ratio))
	params.LengthSeconds = lerpFloat(a.LengthSeconds, b.LengthSeconds, ratio)
	params.BPM = lerpBPM(a.BPM, b.BPM, ratio)
	params.MoodTags = unionTags(a.MoodTags, b.MoodTags)

	// 调式与类别取占优一方
	if ratio > 0.5 {
		params.Type = b.Type
		if b.Key != "" {
			params.Key = b.Key
		}
	}

	suffix := fmt.Sprintf("blend of %s and %s, %s",
		displayName(s.parent), displayName(s.combineWith), blendQuality(ratio))

	return &strategyOutput{
		Params:       params,
		PromptSuffix: suffix,
	}
}

func (s *variationStrategy) applyStyleTransfer() *strategyOutput {
	// 数值向量保持父值，风格只体现在提示词
	return &strategyOutput{
		Params:       s.parent.Parameters,
		PromptSuffix: fmt.Sprintf("in the style of %s", s.req.StyleText),
	}
}

// blendQuality 比例的定性描述
func blendQuality(ratio float64) string {
	switch {
	case ratio < 0.35:
		return "mostly the first source"
	case ratio > 0.65:
		return "mostly the second source"
	default:
		return "balanced blend"
	}
}

func displayName(sound *sound_models.SoundGeneration) string {
	if sound.Name != "" {
		return sound.Name
	}
	prompt := []rune(sound.Prompt)
	if len(prompt) > 32 {
		return string(prompt[:32])
	}
	return sound.Prompt
}

func lerpInt(a, b int, ratio float64) int {
	return int(math.Round(float64(a)*(1-ratio) + float64(b)*ratio))
}

func lerpFloat(a, b, ratio float64) float64 {
	return a*(1-ratio) + b*ratio
}

func lerpBPM(a, b *int, ratio float64) *int {
	switch {
	case a != nil && b != nil:
		v := clampBPM(lerpInt(*a, *b, ratio))
		return &v
	case a != nil:
		v := *a
		return &v
	case b != nil:
		v := *b
		return &v
	}
	return nil
}

// unionTags 两组标签的有序并集：先保留A的顺序，再追加B独有的
func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, tag := range a {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}
	for _, tag := range b {
		if !seen[tag] {
			seen[tag] = true
			union = append(union, tag)
		}
	}
	return union
}

func clampScale(v int) int {
	if v < sound_models.ScaleMin {
		return sound_models.ScaleMin
	}
	if v > sound_models.ScaleMax {
		return sound_models.ScaleMax
	}
	return v
}

func clampBrightness(v float64) float64 {
	if v < sound_models.BrightnessMin {
		return sound_models.BrightnessMin
	}
	if v > sound_models.BrightnessMax {
		return sound_models.BrightnessMax
	}
	return v
}

func clampBPM(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
