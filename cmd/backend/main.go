package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"repairportal/internal/app/config"
	"repairportal/internal/app/dsn"
	"repairportal/internal/app/handler"
	"repairportal/internal/app/middleware"
	"repairportal/internal/app/redis"
	"repairportal/internal/app/repository"
	"repairportal/internal/app/service"
	"repairportal/internal/app/storage"
	"repairportal/internal/pkg"
)

// @title Repair Service Portal API
// @version 1.0
// @description Портал учёта заявок на ремонт бытовой техники

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("error loading config: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("error initializing repository: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("error initializing redis client: ", err)
	}
	defer redisClient.Close()

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Fatal("error initializing minio client: ", err)
	}

	orderService := service.NewOrderService(repo, service.AnyTransitionPolicy{})
	userService := service.NewUserService(repo, service.BcryptHasher{})

	apiHandler := handler.NewAPIHandler(orderService, userService, minioClient, redisClient, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()

	app := pkg.NewApp(cfg, router, apiHandler, authMiddleware)
	app.RunApp()

	logrus.Info("App terminated")
}
