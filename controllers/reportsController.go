package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/victorjere/BizTrack-SMEs/database"
	"github.com/victorjere/BizTrack-SMEs/models"
)

type GenerateReportRequest struct {
	ReportType string `json:"reportType" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

type ReportRow struct {
	Date     string
	Item     string
	Quantity int
	Amount   float64
}

func businessTransactions(businessName string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := database.DB.
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Find(&transactions).Error
	return transactions, err
}

func businessProducts(businessName string) ([]models.Product, error) {
	var products []models.Product
	err := database.DB.
		Where("LOWER(business_name) = ?", strings.ToLower(businessName)).
		Order("created_at").
		Find(&products).Error
	return products, err
}

// GetSummary computes revenue, expenses and the profit estimate for a
// reporting window (today, week, month, all). Windows are computed from
// wall-clock now on every call.
func GetSummary(c *gin.Context) {
	businessName := c.GetString("business_name")

	window := c.DefaultQuery("window", "today")
	if !validWindow(window) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Window must be one of today, week, month, all",
			"code":  "INVALID_WINDOW",
		})
		return
	}

	transactions, err := businessTransactions(businessName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	products, err := businessProducts(businessName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	inWindow := filterWindow(transactions, time.Now(), window)
	revenue := sumByType(inWindow, models.TransactionSale)
	expenses := sumByType(inWindow, models.TransactionExpense)
	profit := profitContribution(inWindow, productIndex(products)) - expenses

	c.JSON(http.StatusOK, gin.H{
		"window":          window,
		"revenue":         revenue,
		"expenses":        expenses,
		"profit":          profit,
		"inventory_value": inventoryValue(products),
	})
}

// GetPaymentBreakdown returns today's SALE totals per payment method.
func GetPaymentBreakdown(c *gin.Context) {
	businessName := c.GetString("business_name")

	transactions, err := businessTransactions(businessName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	today := filterWindow(transactions, time.Now(), "today")
	c.JSON(http.StatusOK, gin.H{"breakdown": methodBreakdown(today)})
}

// GetTopSellers returns the three most sold items of the trailing 30 days.
func GetTopSellers(c *gin.Context) {
	businessName := c.GetString("business_name")

	transactions, err := businessTransactions(businessName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"top_sellers": topSellers(transactions, time.Now())})
}

func GenerateReport(c *gin.Context) {
	businessName := c.GetString("business_name")

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate format"})
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate format"})
		return
	}

	// Fetch business-specific data
	rows, title, err := fetchReportData(businessName, req.ReportType, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Generate PDF
	pdf := generatePDF(rows, title, req.ReportType, startDate, endDate)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.pdf", req.ReportType))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func fetchReportData(businessName, reportType string, startDate, endDate time.Time) ([]ReportRow, string, error) {
	var rows []ReportRow
	var title string

	switch reportType {
	case "sales", "expenses":
		transactionType := models.TransactionSale
		title = "Sales Report"
		if reportType == "expenses" {
			transactionType = models.TransactionExpense
			title = "Expense Report"
		}

		var transactions []models.Transaction
		if err := database.DB.
			Where("LOWER(business_name) = ? AND type = ? AND created_at BETWEEN ? AND ?",
				strings.ToLower(businessName), transactionType, startDate, endDate).
			Order("created_at").
			Find(&transactions).Error; err != nil {
			return nil, "", err
		}
		for _, t := range transactions {
			item := t.ItemName
			if item == "" {
				item = t.Note
			}
			rows = append(rows, ReportRow{
				Date:     t.CreatedAt.Format("2006-01-02"),
				Item:     item,
				Quantity: t.Quantity,
				Amount:   t.Amount,
			})
		}

	case "current-stock":
		products, err := businessProducts(businessName)
		if err != nil {
			return nil, "", err
		}
		for _, p := range products {
			rows = append(rows, ReportRow{
				Item:     p.Name,
				Quantity: p.StockCount,
				Amount:   float64(p.StockCount) * p.BuyPrice,
			})
		}
		title = "Current Stock Report"

	case "low-stock":
		products, err := businessProducts(businessName)
		if err != nil {
			return nil, "", err
		}
		for _, p := range lowStockProducts(products) {
			rows = append(rows, ReportRow{
				Item:     p.Name,
				Quantity: p.StockCount,
				Amount:   float64(p.StockCount) * p.BuyPrice,
			})
		}
		title = "Low Stock Report"

	default:
		return nil, "", fmt.Errorf("invalid report type")
	}

	return rows, title, nil
}

func generatePDF(rows []ReportRow, title, reportType string, startDate, endDate time.Time) []byte {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	// Report Title
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Date Range
	pdf.SetFont("Arial", "", 12)
	if reportType != "current-stock" && reportType != "low-stock" {
		pdf.CellFormat(0, 10, fmt.Sprintf("Date Range: %s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		pdf.Ln(5)

		var totalItems int
		var totalAmount float64
		for _, row := range rows {
			totalItems += row.Quantity
			totalAmount += row.Amount
		}

		pdf.CellFormat(0, 10, fmt.Sprintf("Total Items: %d", totalItems), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Total Amount: K %.2f", totalAmount), "", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	// Table Header
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(40, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 10, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 10, "Amount", "1", 1, "C", false, 0, "")

	// Table Rows
	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(40, 10, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 10, row.Item, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 10, fmt.Sprintf("K %.2f", row.Amount), "1", 1, "R", false, 0, "")
	}

	// Write PDF to buffer
	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}
