package repository_app_config

import (
	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_app/domain_app_config"
	"github.com/echoforge/echoforge/mongo"
	"github.com/echoforge/echoforge/repository"
)

// AppEngineConfigRepository is an alias for the generic ConfigRepository.
type AppEngineConfigRepository interface {
	domain.ConfigRepository[domain_app_config.AppEngineConfig]
}

// NewAppEngineConfigRepository creates a new repository for engine configurations.
// It uses the generic single-document config implementation.
func NewAppEngineConfigRepository(db mongo.Database) AppEngineConfigRepository {
	return repository.NewBaseConfigRepository[domain_app_config.AppEngineConfig](db, domain.CollectionAppEngineConfigs)
}
