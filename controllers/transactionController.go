package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
)

type TransactionInput struct {
	Type     string  `json:"type" binding:"required"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
	Method   string  `json:"method"`
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Note     string  `json:"note"`
}

// CreateTransaction records a ledger entry. A SALE that references a
// product also decrements that product's stock count in the same database
// transaction. If the referenced product no longer exists the decrement is
// skipped and the ledger write still goes through: the sale happened, and
// losing the stock adjustment beats rejecting recorded revenue.
func CreateTransaction(c *gin.Context) {
	businessName := c.GetString("business_name")
	userID := c.GetString("user_id")

	var input TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidTransactionType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Transaction type must be SALE or EXPENSE",
			"code":  "INVALID_TYPE",
		})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Amount must be greater than zero",
			"code":  "INVALID_AMOUNT",
		})
		return
	}

	if input.Method == "" {
		input.Method = models.MethodCash
	}
	if !models.ValidPaymentMethod(input.Method) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown payment method",
			"code":  "INVALID_METHOD",
		})
		return
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	transaction := models.Transaction{
		ID:           uuid.NewString(),
		BusinessName: businessName,
		Type:         input.Type,
		Amount:       input.Amount,
		Quantity:     quantity,
		Method:       input.Method,
		ItemID:       input.ItemID,
		ItemName:     input.ItemName,
		Note:         input.Note,
		RecordedBy:   userID,
		CreatedAt:    time.Now(),
	}

	tx := database.DB.Begin()

	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		return
	}

	// Update stock
	if transaction.Type == models.TransactionSale && transaction.ItemID != "" {
		var product models.Product
		err := tx.Where(
			"LOWER(business_name) = ? AND id = ?",
			strings.ToLower(businessName),
			transaction.ItemID,
		).First(&product).Error

		switch {
		case err == nil:
			product.StockCount -= quantity
			if transaction.ItemName == "" {
				transaction.ItemName = product.Name
				if err := tx.Save(&transaction).Error; err != nil {
					tx.Rollback()
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
					return
				}
			}
			if err := tx.Save(&product).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory"})
				return
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Dangling product reference: keep the revenue, skip the decrement.
			zap.L().Warn("stock decrement skipped, product no longer exists",
				zap.String("item_id", transaction.ItemID),
				zap.String("business", businessName))
		default:
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory"})
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions returns the business ledger, most recent first.
func GetTransactions(c *gin.Context) {
	businessName := c.GetString("business_name")

	var transactions []models.Transaction
	if err := database.DB.
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func GetRecentTransactions(c *gin.Context) {
	businessName := c.GetString("business_name")

	var transactions []models.Transaction
	if err := database.DB.
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Order("created_at DESC").
		Limit(5).
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// DeleteTransaction removes a ledger entry. Stock is deliberately left
// alone: deleting a record corrects the books, it does not put goods back
// on the shelf.
func DeleteTransaction(c *gin.Context) {
	businessName := c.GetString("business_name")

	var transaction models.Transaction
	if err := database.DB.
		Where("LOWER(business_name) = ? AND id = ?", strings.ToLower(businessName), c.Param("id")).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found", "code": "TRANSACTION_NOT_FOUND"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := database.DB.Delete(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
