package database

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/victorjere/BizTrack-SMEs/models"
)

const demoBusiness = "Lusaka Central Mart"

// SeedIfEmpty bootstraps a demo owner account and a small demo catalog so a
// fresh install is usable immediately. Both checks are independent and the
// whole thing is a no-op once the tables have rows.
func SeedIfEmpty() {
	var userCount int
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash demo owner password", zap.Error(err))
			return
		}

		owner := models.User{
			ID:           uuid.NewString(),
			FullName:     "Jane Doe",
			PhoneNumber:  "0970000000",
			Email:        "owner@lusakamart.com",
			Password:     string(hash),
			BusinessName: demoBusiness,
			Role:         models.RoleOwner,
			Tier:         models.TierPaid,
			Status:       models.StatusApproved,
		}
		if err := DB.Create(&owner).Error; err != nil {
			zap.L().Error("failed to seed demo owner", zap.Error(err))
		} else {
			zap.L().Info("seeded demo owner account", zap.String("email", owner.Email))
		}
	}

	var productCount int
	DB.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		demoProducts := []models.Product{
			{ID: uuid.NewString(), BusinessName: demoBusiness, Name: "Mosi Lager 375ml", BuyPrice: 15, SellPrice: 20, StockCount: 48, MinStock: 12},
			{ID: uuid.NewString(), BusinessName: demoBusiness, Name: "Mealile Mealie Meal 10kg", BuyPrice: 180, SellPrice: 210, StockCount: 5, MinStock: 10},
			{ID: uuid.NewString(), BusinessName: demoBusiness, Name: "Cooking Oil 2L", BuyPrice: 65, SellPrice: 85, StockCount: 20, MinStock: 5},
		}
		for _, p := range demoProducts {
			if err := DB.Create(&p).Error; err != nil {
				zap.L().Error("failed to seed demo product", zap.String("name", p.Name), zap.Error(err))
			}
		}
		zap.L().Info("seeded demo catalog", zap.Int("products", len(demoProducts)))
	}
}
