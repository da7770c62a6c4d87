package main

import (
	"log"
	"time"

	"cms-app/config"
	"cms-app/database"
	pagesapi "cms-app/internal/api/pages"
	routes "cms-app/internal/app/http"
	"cms-app/internal/infra/logger"
	"cms-app/internal/infra/postgres"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	zl, err := logger.New(config.LOG_LEVEL)
	if err != nil {
		log.Fatal("❌ Failed to build logger:", err)
	}
	defer func() { _ = zl.Sync() }()

	database.InitDB()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := pagesapi.NewHandler(postgres.New(database.DB), config.Media(), zl)
	routes.RegisterRoutes(r, h, config.JWT_SECRET)

	zl.Info("starting server", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
