package usecase_sound_entity

import (
	"testing"

	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func testParent() *sound_models.SoundGeneration {
	return &sound_models.SoundGeneration{
		Prompt: "deep cinematic drone",
		Name:   "Drone A",
		Parameters: sound_models.SoundParameters{
			Type:          sound_models.SoundTypeAmbience,
			Intensity:     50,
			Texture:       40,
			Brightness:    0.0,
			Noisiness:     30,
			MoodTags:      []string{"dark", "calm"},
			LengthSeconds: 20,
			BPM:           intPtr(120),
			Key:           "D minor",
			Seed:          int64Ptr(42),
		},
	}
}

func TestVariationRamp(t *testing.T) {
	// total=1 时防除零保护取全幅 1.0 而非 0.0
	assert.Equal(t, 1.0, variationRamp(0, 1))

	assert.Equal(t, 0.0, variationRamp(0, 3))
	assert.Equal(t, 0.5, variationRamp(1, 3))
	assert.Equal(t, 1.0, variationRamp(2, 3))
}

func TestCombineRatio(t *testing.T) {
	// count=1 时恰好均衡 0.5
	assert.Equal(t, 0.5, combineRatio(0, 1))

	// count=N 时 0, 1/(N-1), ..., 1
	assert.Equal(t, 0.0, combineRatio(0, 5))
	assert.Equal(t, 0.25, combineRatio(1, 5))
	assert.Equal(t, 1.0, combineRatio(4, 5))
}

func TestParameterShiftSingleVariation(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationParameterShift,
		Count:         1,
		ParameterShifts: &sound_models.ParameterShifts{
			Intensity:  20,
			Texture:    -10,
			Brightness: 0.4,
			Noisiness:  5,
			BPM:        8,
		},
	}

	out, err := newVariationStrategy(req, parent, nil).Apply(0, 1)
	require.NoError(t, err)

	// total=1 施加全幅
	assert.Equal(t, 70, out.Params.Intensity)
	assert.Equal(t, 30, out.Params.Texture)
	assert.InDelta(t, 0.4, out.Params.Brightness, 1e-9)
	assert.Equal(t, 35, out.Params.Noisiness)
	require.NotNil(t, out.Params.BPM)
	assert.Equal(t, 128, *out.Params.BPM)
	assert.Equal(t, "with adjusted parameters", out.PromptSuffix)

	// 父记录不被修改
	assert.Equal(t, 50, parent.Parameters.Intensity)
}

func TestParameterShiftRampAcrossBatch(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationParameterShift,
		Count:         3,
		ParameterShifts: &sound_models.ParameterShifts{
			Intensity: 30,
		},
	}
	strategy := newVariationStrategy(req, parent, nil)

	first, err := strategy.Apply(0, 3)
	require.NoError(t, err)
	mid, err := strategy.Apply(1, 3)
	require.NoError(t, err)
	last, err := strategy.Apply(2, 3)
	require.NoError(t, err)

	assert.Equal(t, 50, first.Params.Intensity)
	assert.Equal(t, 65, mid.Params.Intensity)
	assert.Equal(t, 80, last.Params.Intensity)
}

func TestParameterShiftClampsToBounds(t *testing.T) {
	parent := testParent()
	parent.Parameters.Intensity = 95
	parent.Parameters.Brightness = 0.9
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationParameterShift,
		Count:         1,
		ParameterShifts: &sound_models.ParameterShifts{
			Intensity:  50,
			Brightness: 0.8,
			Noisiness:  -100,
		},
	}

	out, err := newVariationStrategy(req, parent, nil).Apply(0, 1)
	require.NoError(t, err)

	assert.Equal(t, sound_models.ScaleMax, out.Params.Intensity)
	assert.Equal(t, sound_models.BrightnessMax, out.Params.Brightness)
	assert.Equal(t, sound_models.ScaleMin, out.Params.Noisiness)
}

func TestEvolvePhaseSuffixes(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType:     sound_models.VariationEvolve,
		Count:             5,
		EvolutionStrength: 0.3,
	}
	strategy := newVariationStrategy(req, parent, nil)

	cases := []struct {
		index  int
		suffix string
	}{
		{0, "subtle evolution, early stage"}, // phase 0.0
		{1, "subtle evolution, early stage"}, // phase 0.25
		{2, "mid evolution, developing"},     // phase 0.5
		{4, "evolved form, refined"},         // phase 1.0
	}
	for _, c := range cases {
		out, err := strategy.Apply(c.index, 5)
		require.NoError(t, err)
		assert.Equal(t, c.suffix, out.PromptSuffix)
	}
}

func TestEvolveDivergenceGrowsWithPhase(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType:     sound_models.VariationEvolve,
		Count:             4,
		EvolutionStrength: 0.5,
	}
	strategy := newVariationStrategy(req, parent, nil)

	first, err := strategy.Apply(0, 4)
	require.NoError(t, err)
	last, err := strategy.Apply(3, 4)
	require.NoError(t, err)

	// phase=0 无发散，保持父值
	assert.Equal(t, parent.Parameters.Intensity, first.Params.Intensity)
	assert.Equal(t, parent.Parameters.Texture, first.Params.Texture)

	// phase=1 全幅发散：强度上行，质感下行
	assert.Greater(t, last.Params.Intensity, parent.Parameters.Intensity)
	assert.Less(t, last.Params.Texture, parent.Parameters.Texture)
}

func TestMutateSeededReproducibility(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationMutate,
		Count:         3,
		MutationRate:  0.5,
	}

	a, err := newVariationStrategy(req, parent, nil).Apply(1, 3)
	require.NoError(t, err)
	b, err := newVariationStrategy(req, parent, nil).Apply(1, 3)
	require.NoError(t, err)

	// 同种子同索引必然得到同一扰动
	assert.Equal(t, a.Params, b.Params)
}

func TestMutatePreserveCoreLocksIntensityAndBPM(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationMutate,
		Count:         1,
		MutationRate:  0.7,
		PreserveCore:  true,
	}

	out, err := newVariationStrategy(req, parent, nil).Apply(0, 1)
	require.NoError(t, err)

	assert.Equal(t, parent.Parameters.Intensity, out.Params.Intensity)
	require.NotNil(t, out.Params.BPM)
	assert.Equal(t, *parent.Parameters.BPM, *out.Params.BPM)
	assert.Equal(t, "experimental mutation, unexpected elements", out.PromptSuffix)
}

func testCombineWith() *sound_models.SoundGeneration {
	return &sound_models.SoundGeneration{
		Prompt: "bright arpeggio",
		Name:   "Arp B",
		Parameters: sound_models.SoundParameters{
			Type:          sound_models.SoundTypeMelody,
			Intensity:     90,
			Texture:       80,
			Brightness:    0.8,
			Noisiness:     10,
			MoodTags:      []string{"bright", "calm"},
			LengthSeconds: 10,
			BPM:           intPtr(140),
			Key:           "A major",
		},
	}
}

func TestCombineBlendsParameters(t *testing.T) {
	parent := testParent()
	other := testCombineWith()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationCombine,
		Count:         3,
	}
	strategy := newVariationStrategy(req, parent, other)

	// ratio=0：纯A
	first, err := strategy.Apply(0, 3)
	require.NoError(t, err)
	assert.Equal(t, parent.Parameters.Intensity, first.Params.Intensity)
	assert.Equal(t, parent.Parameters.Type, first.Params.Type)
	assert.Equal(t, parent.Parameters.Key, first.Params.Key)

	// ratio=0.5：均值
	mid, err := strategy.Apply(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 70, mid.Params.Intensity)
	assert.Equal(t, 60, mid.Params.Texture)
	require.NotNil(t, mid.Params.BPM)
	assert.Equal(t, 130, *mid.Params.BPM)

	// ratio=1：纯B，类别与调式取占优一方
	last, err := strategy.Apply(2, 3)
	require.NoError(t, err)
	assert.Equal(t, other.Parameters.Intensity, last.Params.Intensity)
	assert.Equal(t, other.Parameters.Type, last.Params.Type)
	assert.Equal(t, other.Parameters.Key, last.Params.Key)
}

func TestCombineMoodTagsOrderedUnion(t *testing.T) {
	parent := testParent()
	other := testCombineWith()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationCombine,
		Count:         1,
	}

	out, err := newVariationStrategy(req, parent, other).Apply(0, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"dark", "calm", "bright"}, out.Params.MoodTags)
}

func TestCombinePromptNamesBothSources(t *testing.T) {
	parent := testParent()
	other := testCombineWith()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationCombine,
		Count:         1,
	}

	out, err := newVariationStrategy(req, parent, other).Apply(0, 1)
	require.NoError(t, err)

	assert.Equal(t, "blend of Drone A and Arp B, balanced blend", out.PromptSuffix)
}

func TestStyleTransferKeepsParameters(t *testing.T) {
	parent := testParent()
	req := &sound_models.DerivationRequest{
		VariationType: sound_models.VariationStyleTransfer,
		Count:         1,
		StyleText:     "8-bit chiptune",
	}

	out, err := newVariationStrategy(req, parent, nil).Apply(0, 1)
	require.NoError(t, err)

	assert.Equal(t, parent.Parameters, out.Params)
	assert.Equal(t, "in the style of 8-bit chiptune", out.PromptSuffix)
}

func TestDisplayNameTruncatesLongPrompt(t *testing.T) {
	sound := &sound_models.SoundGeneration{
		Prompt: "an extremely long prompt that keeps going well past the cutoff point",
	}

	name := displayName(sound)
	assert.Len(t, []rune(name), 32)
}
