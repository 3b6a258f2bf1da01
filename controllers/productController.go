package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
)

type ProductInput struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category"`
	BuyPrice   float64 `json:"buy_price"`
	SellPrice  float64 `json:"sell_price"`
	StockCount int     `json:"stock_count"`
	MinStock   int     `json:"min_stock"`
}

func handleProductError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "code": "PRODUCT_NOT_FOUND"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// priceWarning is advisory only: a sell price below cost never blocks the
// write, the caller just gets told about it.
func priceWarning(p models.Product) string {
	if p.SellPrice < p.BuyPrice {
		zap.L().Warn("product sell price below buy price",
			zap.String("product", p.Name),
			zap.Float64("buy_price", p.BuyPrice),
			zap.Float64("sell_price", p.SellPrice))
		return "sell price is below buy price"
	}
	return ""
}

func GetProducts(c *gin.Context) {
	businessName := c.GetString("business_name")

	var products []models.Product
	if err := database.DB.
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Order("created_at").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	businessName := c.GetString("business_name")

	var product models.Product
	if err := database.DB.
		Where("LOWER(business_name) = ? AND id = ?", strings.ToLower(businessName), c.Param("id")).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	businessName := c.GetString("business_name")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ID:           uuid.NewString(),
		BusinessName: businessName,
		Name:         input.Name,
		Category:     input.Category,
		BuyPrice:     input.BuyPrice,
		SellPrice:    input.SellPrice,
		StockCount:   input.StockCount,
		MinStock:     input.MinStock,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"message": "Product created successfully",
		"product": product,
	}
	if warning := priceWarning(product); warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateProduct is a full replace: the caller supplies the complete record
// including unchanged fields. There is no partial-field merge.
func UpdateProduct(c *gin.Context) {
	businessName := c.GetString("business_name")

	var product models.Product
	if err := database.DB.
		Where("LOWER(business_name) = ? AND id = ?", strings.ToLower(businessName), c.Param("id")).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = input.Name
	product.Category = input.Category
	product.BuyPrice = input.BuyPrice
	product.SellPrice = input.SellPrice
	product.StockCount = input.StockCount
	product.MinStock = input.MinStock

	if err := database.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"product": product}
	if warning := priceWarning(product); warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProduct removes the product outright. Historical transactions keep
// their name and amount snapshots, so there is no cascade.
func DeleteProduct(c *gin.Context) {
	businessName := c.GetString("business_name")

	var product models.Product
	if err := database.DB.
		Where("LOWER(business_name) = ? AND id = ?", strings.ToLower(businessName), c.Param("id")).
		First(&product).Error; err != nil {
		handleProductError(c, err)
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// getting total no. of products
func NumberOfProducts(c *gin.Context) {
	businessName := c.GetString("business_name")

	var count int
	if err := database.DB.Model(&models.Product{}).
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": count})
}

// getting all low-stock items
func LowStockItems(c *gin.Context) {
	businessName := c.GetString("business_name")

	var products []models.Product
	if err := database.DB.
		Where("LOWER(business_name) = ? AND stock_count <= min_stock", strings.ToLower(businessName)).
		Order("created_at").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch low stock items"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// getting number of low stock items
func LowStock(c *gin.Context) {
	businessName := c.GetString("business_name")

	var count int
	if err := database.DB.Model(&models.Product{}).
		Where("LOWER(business_name) = ? AND stock_count <= min_stock", strings.ToLower(businessName)).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch low stock items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lowstock": count})
}

// getting total value of the inventory, valued at cost
func TotalValue(c *gin.Context) {
	businessName := c.GetString("business_name")

	var totalValue float64
	err := database.DB.Raw(
		"SELECT COALESCE(SUM(buy_price * stock_count), 0) AS total_value FROM products WHERE LOWER(business_name) = ?",
		strings.ToLower(businessName),
	).Row().Scan(&totalValue)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalValue": totalValue})
}
