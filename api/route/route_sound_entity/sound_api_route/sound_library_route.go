package sound_api_route

import (
	"time"

	"github.com/echoforge/echoforge/api/controller/controller_sound_entity/sound_api_controller"
	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/mongo"
	"github.com/echoforge/echoforge/repository/repository_sound_entity"
	"github.com/echoforge/echoforge/usecase/usecase_sound_entity"
	"github.com/gin-gonic/gin"
)

func NewSoundLibraryRouter(timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	libraryRepo := repository_sound_entity.NewSoundLibraryRepository(db, domain.CollectionSoundGeneration)
	libraryUsecase := usecase_sound_entity.NewSoundLibraryUsecase(libraryRepo, timeout)
	libCtrl := sound_api_controller.NewSoundLibraryController(libraryUsecase)

	group.GET("/sounds", libCtrl.GetSoundItems)
	group.GET("/sounds/detail", libCtrl.GetSoundDetail)
	group.PUT("/sounds/metadata", libCtrl.UpdateMetadata)
}
