package pkg

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/config"
	"repairportal/internal/app/handler"
	"repairportal/internal/app/middleware"
)

type Application struct {
	Config         *config.Config
	Router         *gin.Engine
	Handler        *handler.APIHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler, am *middleware.AuthMiddleware) *Application {
	return &Application{
		Config:         c,
		Router:         r,
		Handler:        h,
		AuthMiddleware: am,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.AuthMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
