package main

import (
	"time"

	"github.com/echoforge/echoforge/api/route"
	"github.com/echoforge/echoforge/bootstrap"
	"github.com/gin-gonic/gin"
)

func main() {
	app := bootstrap.App()

	env := app.Env

	db := app.Mongo.Database(env.DBName)
	defer app.CloseDBConnection()

	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.Default()

	route.Setup(env, timeout, db, engine)

	err := engine.Run(env.ServerAddress)
	if err != nil {
		return
	}
}
