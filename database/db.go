package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"go.uber.org/zap"

	"github.com/victorjere/BizTrack-SMEs/config"
	"github.com/victorjere/BizTrack-SMEs/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	cfg := config.LoadConfig()
	connectionString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword)

	var err error
	DB, err = gorm.Open("postgres", connectionString)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	//migrations
	DB.AutoMigrate(&models.User{}, &models.Product{}, &models.Transaction{})
}
