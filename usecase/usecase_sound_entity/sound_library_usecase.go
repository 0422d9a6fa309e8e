package usecase_sound_entity

import (
	"context"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

type soundLibraryUsecase struct {
	libraryRepo sound_interface.SoundLibraryRepository
	timeout     time.Duration
}

func NewSoundLibraryUsecase(
	libraryRepo sound_interface.SoundLibraryRepository,
	timeout time.Duration,
) sound_interface.SoundLibraryUsecase {
	return &soundLibraryUsecase{
		libraryRepo: libraryRepo,
		timeout:     timeout,
	}
}

func (uc *soundLibraryUsecase) GetByID(ctx context.Context, soundId string) (*sound_models.SoundGeneration, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.libraryRepo.GetByID(ctx, soundId)
}

func (uc *soundLibraryUsecase) UpdateMetadata(ctx context.Context, soundId, name, groupName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.libraryRepo.UpdateMetadata(ctx, soundId, name, groupName)
}

func (uc *soundLibraryUsecase) GetSoundItems(
	ctx context.Context,
	start, end string,
	sortOrder []domain.SortOrder,
	search, groupName, soundType, status string,
) ([]sound_models.SoundGeneration, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.libraryRepo.GetSoundItems(ctx, start, end, sortOrder, search, groupName, soundType, status)
}
