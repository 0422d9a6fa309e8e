package sound_interface

import (
	"context"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
)

// SoundLibraryRepository 媒体库协作方：声音记录的持久化
type SoundLibraryRepository interface {
	GetByID(ctx context.Context, soundId string) (*sound_models.SoundGeneration, error)

	Save(ctx context.Context, sound *sound_models.SoundGeneration) (*sound_models.SoundGeneration, error)

	// UpdateMetadata 终态后仍允许的媒体库侧补丁（名称、分组）
	UpdateMetadata(ctx context.Context, soundId, name, groupName string) (bool, error)

	GetSoundItems(
		ctx context.Context,
		start, end string,
		sortOrder []domain.SortOrder,
		search, groupName, soundType, status string,
	) ([]sound_models.SoundGeneration, error)
}

// SoundLibraryUsecase 媒体库浏览与维护的用例层（超时控制在这里）
type SoundLibraryUsecase interface {
	GetByID(ctx context.Context, soundId string) (*sound_models.SoundGeneration, error)

	UpdateMetadata(ctx context.Context, soundId, name, groupName string) (bool, error)

	GetSoundItems(
		ctx context.Context,
		start, end string,
		sortOrder []domain.SortOrder,
		search, groupName, soundType, status string,
	) ([]sound_models.SoundGeneration, error)
}
