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

func NewSignupRouter(env *bootstrap.Env, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	ur := repository_auth.NewUserRepository(db)
	sc := controller_auth.SignupController{
		SignupUsecase: usecase_auth.NewSignupUsecase(ur, timeout),
		Env:           env,
	}
	group.POST("/signup", sc.Signup)
}
