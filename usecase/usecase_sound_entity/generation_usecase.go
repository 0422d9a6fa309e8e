package usecase_sound_entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// generationUsecase 直接生成入口：校验、选引擎、合成、入库
// 产出的声音不属于任何谱系，首次被派生时才建立谱系
type generationUsecase struct {
	libraryRepo   sound_interface.SoundLibraryRepository
	synthesisRepo sound_interface.SynthesisRepository
	engineSelect  sound_interface.EngineSelectionUsecase
	timeout       time.Duration
}

func NewGenerationUsecase(
	libraryRepo sound_interface.SoundLibraryRepository,
	synthesisRepo sound_interface.SynthesisRepository,
	engineSelect sound_interface.EngineSelectionUsecase,
	timeout time.Duration,
) sound_interface.GenerationUsecase {
	return &generationUsecase{
		libraryRepo:   libraryRepo,
		synthesisRepo: synthesisRepo,
		engineSelect:  engineSelect,
		timeout:       timeout,
	}
}

func (uc *generationUsecase) Generate(
	ctx context.Context,
	req *sound_interface.GenerationRequest,
) (*sound_models.SoundGeneration, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	validations := []func() error{
		func() error {
			if strings.TrimSpace(req.Prompt) == "" {
				return fmt.Errorf("%w: prompt cannot be empty", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if !req.Parameters.Type.Valid() {
				return fmt.Errorf("%w: unrecognized sound type %q", domain.ErrValidation, req.Parameters.Type)
			}
			return nil
		},
		func() error {
			if req.Parameters.LengthSeconds <= 0 {
				return fmt.Errorf("%w: length_seconds must be positive", domain.ErrValidation)
			}
			return nil
		},
		func() error {
			if !validScale(req.Parameters.Intensity) ||
				!validScale(req.Parameters.Texture) ||
				!validScale(req.Parameters.Noisiness) {
				return fmt.Errorf("%w: scale parameters must be between %d and %d",
					domain.ErrValidation, sound_models.ScaleMin, sound_models.ScaleMax)
			}
			return nil
		},
		func() error {
			if req.Parameters.Brightness < sound_models.BrightnessMin ||
				req.Parameters.Brightness > sound_models.BrightnessMax {
				return fmt.Errorf("%w: brightness must be between %v and %v",
					domain.ErrValidation, sound_models.BrightnessMin, sound_models.BrightnessMax)
			}
			return nil
		},
		func() error {
			if req.Parameters.BPM != nil && *req.Parameters.BPM <= 0 {
				return fmt.Errorf("%w: bpm must be positive when set", domain.ErrValidation)
			}
			return nil
		},
	}

	for _, validate := range validations {
		if err := validate(); err != nil {
			return nil, err
		}
	}

	engineID := req.EngineID
	if engineID == "" {
		recommendation, err := uc.engineSelect.Recommend(ctx, req.Prompt, req.Parameters.LengthSeconds, false)
		if err != nil {
			return nil, err
		}
		engineID = recommendation.EngineID
	}

	synth, err := uc.synthesisRepo.Generate(ctx, engineID, req.Prompt, req.Parameters)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	sound := &sound_models.SoundGeneration{
		Prompt:       req.Prompt,
		Parameters:   req.Parameters,
		AudioURL:     synth.AudioURL,
		Status:       sound_models.StatusReady,
		ProvenanceID: synth.ProvenanceID,
		EngineID:     engineID,
		Name:         req.Name,
		GroupName:    req.GroupName,
	}

	return uc.libraryRepo.Save(ctx, sound)
}

func validScale(v int) bool {
	return v >= sound_models.ScaleMin && v <= sound_models.ScaleMax
}
