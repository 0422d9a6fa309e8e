package route_auth

import (
	"time"

	"github.com/echoforge/echoforge/api/controller/controller_auth"
	"github.com/echoforge/echoforge/bootstrap"
	"github.com/echoforge/echoforge/mongo"
	"github.com/echoforge/echoforge/repository/repository_auth"
	"github.com/echoforge/echoforge/usecase/usecase_auth"
	"github.com/gin-gonic/gin"
)

func NewRefreshTokenRouter(env *bootstrap.Env, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	ur := repository_auth.NewUserRepository(db)
	rtc := controller_auth.RefreshTokenController{
		RefreshTokenUsecase: usecase_auth.NewRefreshTokenUsecase(ur, timeout),
		Env:                 env,
	}
	group.POST("/refresh", rtc.RefreshToken)
}
