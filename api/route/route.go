package route

import (
	"time"

	"github.com/echoforge/echoforge/api/middleware"
	"github.com/echoforge/echoforge/api/route/route_auth"
	"github.com/echoforge/echoforge/api/route/route_sound_entity/sound_api_route"
	"github.com/echoforge/echoforge/bootstrap"
	"github.com/echoforge/echoforge/mongo"
	"github.com/gin-gonic/gin"
)

func Setup(env *bootstrap.Env, timeout time.Duration, db mongo.Database, gin *gin.Engine) {
	publicRouter := gin.Group("")
	route_auth.NewSignupRouter(env, timeout, db, publicRouter)
	route_auth.NewLoginRouter(env, timeout, db, publicRouter)
	route_auth.NewRefreshTokenRouter(env, timeout, db, publicRouter)

	protectedRouter := gin.Group("")
	protectedRouter.Use(middleware.JwtAuthMiddleware(env.AccessTokenSecret))
	sound_api_route.NewSoundDerivationRouter(env, timeout, db, protectedRouter)
	sound_api_route.NewSoundLibraryRouter(timeout, db, protectedRouter)
	sound_api_route.NewSoundTempoRouter(protectedRouter)
}
