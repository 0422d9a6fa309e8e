package usecase_app_config

import (
	"context"
	"time"

	"github.com/echoforge/echoforge/domain/domain_app/domain_app_config"
	"github.com/echoforge/echoforge/repository/repository_app/repository_app_config"
	"github.com/echoforge/echoforge/usecase"
)

// AppEngineConfigUsecase implements the usecase interface for engine configuration.
// It embeds the generic ConfigUsecase and seeds the default config when the
// collection has not been initialized yet.
type AppEngineConfigUsecase struct {
	usecase.ConfigUsecase[domain_app_config.AppEngineConfig]
}

// NewAppEngineConfigUsecase creates a new usecase for engine configuration.
func NewAppEngineConfigUsecase(repo repository_app_config.AppEngineConfigRepository, timeout time.Duration) domain_app_config.AppEngineConfigUsecase {
	baseUsecase := usecase.NewConfigUsecase[domain_app_config.AppEngineConfig](repo, timeout)
	return &AppEngineConfigUsecase{
		ConfigUsecase: baseUsecase,
	}
}

// Get 读取引擎配置，未初始化时返回默认配置（全部引擎可用）
func (uc *AppEngineConfigUsecase) Get(ctx context.Context) (*domain_app_config.AppEngineConfig, error) {
	config, err := uc.ConfigUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return domain_app_config.DefaultAppEngineConfig(), nil
	}
	return config, nil
}
