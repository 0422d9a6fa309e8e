package usecase_sound_entity

import (
	"context"
	"testing"
	"time"

	"github.com/echoforge/echoforge/domain/domain_app/domain_app_config"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngineConfigUsecase struct {
	config *domain_app_config.AppEngineConfig
}

func (f *fakeEngineConfigUsecase) Get(ctx context.Context) (*domain_app_config.AppEngineConfig, error) {
	return f.config, nil
}

func (f *fakeEngineConfigUsecase) Update(ctx context.Context, config *domain_app_config.AppEngineConfig) error {
	f.config = config
	return nil
}

func newSelectionFixture(available []string) sound_interface.EngineSelectionUsecase {
	config := domain_app_config.DefaultAppEngineConfig()
	if available != nil {
		config.AvailableEngines = available
	}
	return NewEngineSelectionUsecase(&fakeEngineConfigUsecase{config: config}, 5*time.Second)
}

func TestRecommendVocalPrompt(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "angelic choir singing", 20, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineBark, rec.EngineID)
	assert.Equal(t, "vocal", rec.Rule)
}

func TestRecommendPercussionWithBPMShortDuration(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "128 bpm kick drum loop", 15, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineMusicGenSmall, rec.EngineID)
	assert.Equal(t, "percussion_bpm", rec.Rule)
}

func TestRecommendPercussionDurationBuckets(t *testing.T) {
	uc := newSelectionFixture(nil)

	mid, err := uc.Recommend(context.Background(), "drum groove at 95 bpm", 25, false)
	require.NoError(t, err)
	assert.Equal(t, domain_app_config.EngineMusicGenMedium, mid.EngineID)

	long, err := uc.Recommend(context.Background(), "drum groove at 95 bpm", 45, false)
	require.NoError(t, err)
	assert.Equal(t, domain_app_config.EngineMusicGenLarge, long.EngineID)
}

func TestRecommendAmbiencePrompt(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "ambient drone texture", 20, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineAudioLDM, rec.EngineID)
	assert.Equal(t, "ambience", rec.Rule)
}

func TestRecommendEmptyPromptDefaults(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "", 20, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineMusicGenMedium, rec.EngineID)
	assert.Equal(t, "default", rec.Rule)
}

func TestRecommendReferenceAudio(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "warm pluck melody", 20, true)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineRiffusion, rec.EngineID)
	assert.Equal(t, "reference_audio", rec.Rule)
}

func TestRecommendLongFormDuration(t *testing.T) {
	uc := newSelectionFixture(nil)

	rec, err := uc.Recommend(context.Background(), "gentle piano piece", 60, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineStableAudio, rec.EngineID)
	assert.Equal(t, "long_form", rec.Rule)
}

func TestRecommendConsultsFallbackChain(t *testing.T) {
	// bark 不可用时同档回退到 eleven_voice
	uc := newSelectionFixture([]string{
		domain_app_config.EngineElevenVoice,
		domain_app_config.EngineMusicGenMedium,
	})

	rec, err := uc.Recommend(context.Background(), "angelic choir singing", 20, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineElevenVoice, rec.EngineID)
	assert.Equal(t, "vocal", rec.Rule)
}

func TestRecommendExhaustedChainFallsThrough(t *testing.T) {
	// 人声链整体不可用时落空到后续规则，而不是报错
	uc := newSelectionFixture([]string{domain_app_config.EngineMusicGenMedium})

	rec, err := uc.Recommend(context.Background(), "angelic choir singing", 20, false)
	require.NoError(t, err)

	assert.Equal(t, domain_app_config.EngineMusicGenMedium, rec.EngineID)
	assert.Equal(t, "default", rec.Rule)
}

func TestRecommendIsDeterministic(t *testing.T) {
	uc := newSelectionFixture(nil)

	first, err := uc.Recommend(context.Background(), "128 bpm kick drum loop", 15, false)
	require.NoError(t, err)
	second, err := uc.Recommend(context.Background(), "128 bpm kick drum loop", 15, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
