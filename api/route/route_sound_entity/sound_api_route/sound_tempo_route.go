package sound_api_route

import (
	"github.com/echoforge/echoforge/api/controller/controller_sound_entity/sound_api_controller"
	"github.com/gin-gonic/gin"
)

func NewSoundTempoRouter(group *gin.RouterGroup) {
	tempoCtrl := sound_api_controller.NewTempoController()

	group.POST("/audio/tempo", tempoCtrl.AdjustTempo)
}
