package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/victorjere/BizTrack-SMEs/controllers"
	"github.com/victorjere/BizTrack-SMEs/middleware"
	"github.com/victorjere/BizTrack-SMEs/models"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", controllers.CreateUser)
		auth.POST("/login", controllers.Login)
	}

	// Authenticated but not necessarily approved: a PENDING or REJECTED
	// account may still re-check its status and log out.
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/session", controllers.VerifyAuth)
		authenticated.POST("/users/logout", controllers.Logout)
	}

	// Everything else requires an APPROVED account
	approved := authenticated.Group("/")
	approved.Use(middleware.RequireApproved())
	{
		// User routes
		users := approved.Group("/users")
		{
			users.GET("/staff", controllers.GetStaff)
			users.PATCH("/:id/status", middleware.RoleMiddleware(models.RoleOwner), controllers.UpdateUserStatus)
		}

		// Product routes
		products := approved.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.GET("/total", controllers.NumberOfProducts)
			products.GET("/low-stock", controllers.LowStock)
			products.GET("/low-stock-items", controllers.LowStockItems)
			products.GET("/total-value", controllers.TotalValue)

			catalog := products.Group("")
			catalog.Use(middleware.RoleMiddleware(models.RoleOwner, models.RoleManager))
			{
				catalog.POST("", controllers.CreateProduct)
				catalog.PUT("/:id", controllers.UpdateProduct)
				catalog.DELETE("/:id", controllers.DeleteProduct)
			}
		}

		// Transaction routes
		transactions := approved.Group("/transactions")
		{
			transactions.POST("", controllers.CreateTransaction)
			transactions.GET("", controllers.GetTransactions)
			transactions.GET("/recent", controllers.GetRecentTransactions)
			transactions.DELETE("/:id", middleware.RoleMiddleware(models.RoleOwner), controllers.DeleteTransaction)
		}

		// Reports
		reports := approved.Group("/reports")
		{
			reports.GET("/summary", controllers.GetSummary)
			reports.GET("/payment-methods", controllers.GetPaymentBreakdown)
			reports.GET("/top-sellers", controllers.GetTopSellers)
			reports.POST("", controllers.GenerateReport)
		}
	}
}
