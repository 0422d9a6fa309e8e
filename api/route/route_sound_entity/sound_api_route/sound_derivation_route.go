package sound_api_route

import (
	"time"

	"github.com/echoforge/echoforge/api/controller/controller_sound_entity/sound_api_controller"
	"github.com/echoforge/echoforge/bootstrap"
	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/mongo"
	"github.com/echoforge/echoforge/repository/repository_app/repository_app_config"
	"github.com/echoforge/echoforge/repository/repository_provider"
	"github.com/echoforge/echoforge/repository/repository_sound_entity"
	"github.com/echoforge/echoforge/usecase/usecase_app/usecase_app_config"
	"github.com/echoforge/echoforge/usecase/usecase_sound_entity"
	"github.com/gin-gonic/gin"
)

func NewSoundDerivationRouter(env *bootstrap.Env, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	libraryRepo := repository_sound_entity.NewSoundLibraryRepository(db, domain.CollectionSoundGeneration)
	lineageRepo := repository_sound_entity.NewLineageRepository(db)
	synthesisRepo := repository_provider.NewSynthesisRepository(env.SynthesisBaseURL, env.SynthesisAPIKey, timeout)

	engineConfigRepo := repository_app_config.NewAppEngineConfigRepository(db)
	engineConfigUsecase := usecase_app_config.NewAppEngineConfigUsecase(engineConfigRepo, timeout)
	engineSelect := usecase_sound_entity.NewEngineSelectionUsecase(engineConfigUsecase, timeout)

	derivationUsecase := usecase_sound_entity.NewDerivationUsecase(libraryRepo, lineageRepo, synthesisRepo, engineSelect, timeout)
	derivationCtrl := sound_api_controller.NewDerivationController(derivationUsecase)

	generationUsecase := usecase_sound_entity.NewGenerationUsecase(libraryRepo, synthesisRepo, engineSelect, timeout)
	generationCtrl := sound_api_controller.NewGenerationController(generationUsecase)

	engineCtrl := sound_api_controller.NewEngineSelectionController(engineSelect)

	group.POST("/sounds/generate", generationCtrl.Generate)
	group.POST("/sounds/variations", derivationCtrl.DeriveVariations)
	group.GET("/sounds/lineage", derivationCtrl.GetLineageInfo)
	group.GET("/sounds/lineages", derivationCtrl.GetAllLineages)
	group.GET("/sounds/ancestors", derivationCtrl.GetAncestors)
	group.GET("/sounds/descendants", derivationCtrl.GetDescendants)
	group.GET("/engines/recommend", engineCtrl.Recommend)
}
