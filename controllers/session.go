package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
)

// VerifyAuth is the status re-check read. It reloads the account from the
// database and re-issues the session cookie with fresh claims, so a PENDING
// account that has just been approved picks up its new status here. This
// endpoint stays reachable for non-approved accounts.
func VerifyAuth(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		zap.L().Warn("unauthorized session check", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization token required",
			"code":  "MISSING_CREDENTIALS",
		})
		return
	}

	// Database lookup
	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User account no longer exists",
				"code":  "USER_NOT_FOUND",
			})
		} else {
			zap.L().Error("database error during auth verification", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Could not verify account",
				"code":  "SERVER_ERROR",
			})
		}
		return
	}

	// Refresh the session projection
	if err := issueSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not refresh session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
