package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/victorjere/BizTrack-SMEs/config"
	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/logger"
	"github.com/victorjere/BizTrack-SMEs/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	cfg := config.LoadConfig()

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal("Failed to initialise logger: ", err)
	}
	defer zap.L().Sync()

	gin.SetMode(cfg.GinMode)

	// Connect to database
	database.ConnectDatabase()
	defer database.DB.Close()

	database.SeedIfEmpty()

	// Initialize Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Setting up routes
	routes.SetupRoutes(router)

	zap.L().Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
