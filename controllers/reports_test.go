package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/victorjere/BizTrack-SMEs/models"
)

// Wednesday 15 May 2024, noon.
var reportNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func saleAt(ts time.Time, amount float64, quantity int, itemID, itemName string) models.Transaction {
	return models.Transaction{
		Type:      models.TransactionSale,
		Amount:    amount,
		Quantity:  quantity,
		Method:    models.MethodCash,
		ItemID:    itemID,
		ItemName:  itemName,
		CreatedAt: ts,
	}
}

func expenseAt(ts time.Time, amount float64) models.Transaction {
	return models.Transaction{
		Type:      models.TransactionExpense,
		Amount:    amount,
		Method:    models.MethodCash,
		CreatedAt: ts,
	}
}

func TestWindowStart(t *testing.T) {
	start, ok := windowStart(reportNow, "today")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), start)

	// Week starts on the preceding Sunday.
	start, ok = windowStart(reportNow, "week")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Sunday, start.Weekday())

	start, ok = windowStart(reportNow, "month")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)

	_, ok = windowStart(reportNow, "all")
	assert.False(t, ok)
}

func TestWindowStartOnSunday(t *testing.T) {
	sunday := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)
	start, ok := windowStart(sunday, "week")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), start)
}

func TestFilterWindow(t *testing.T) {
	transactions := []models.Transaction{
		saleAt(reportNow.Add(-1*time.Hour), 100, 1, "", ""),           // today
		saleAt(reportNow.AddDate(0, 0, -2), 50, 1, "", ""),            // this week
		saleAt(reportNow.AddDate(0, 0, -10), 25, 1, "", ""),           // this month
		saleAt(reportNow.AddDate(0, -3, 0), 10, 1, "", ""),            // older
		expenseAt(reportNow.Add(-30*time.Minute), 5),                  // today
	}

	assert.Len(t, filterWindow(transactions, reportNow, "today"), 2)
	assert.Len(t, filterWindow(transactions, reportNow, "week"), 3)
	assert.Len(t, filterWindow(transactions, reportNow, "month"), 4)
	assert.Len(t, filterWindow(transactions, reportNow, "all"), 5)
}

func TestValidWindow(t *testing.T) {
	assert.True(t, validWindow("today"))
	assert.True(t, validWindow("week"))
	assert.True(t, validWindow("month"))
	assert.True(t, validWindow("all"))
	assert.False(t, validWindow("year"))
	assert.False(t, validWindow(""))
}

// The fallback margin case from the dashboard: unlinked sales of 100 and 50
// plus a 30 expense net out to zero profit.
func TestProfitFallbackMargin(t *testing.T) {
	transactions := []models.Transaction{
		saleAt(reportNow, 100, 1, "", ""),
		saleAt(reportNow, 50, 1, "", ""),
		expenseAt(reportNow, 30),
	}

	revenue := sumByType(transactions, models.TransactionSale)
	expenses := sumByType(transactions, models.TransactionExpense)
	profit := profitContribution(transactions, nil) - expenses

	assert.Equal(t, 150.0, revenue)
	assert.Equal(t, 30.0, expenses)
	assert.Equal(t, 0.0, profit)
}

func TestProfitUsesProductMarginWhenLinked(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Bread", BuyPrice: 10, SellPrice: 15},
	}
	transactions := []models.Transaction{
		saleAt(reportNow, 45, 3, "p1", "Bread"),       // (15-10)*3 = 15
		saleAt(reportNow, 100, 1, "gone", "Old item"), // 100*0.2 = 20
		expenseAt(reportNow, 5),
	}

	profit := profitContribution(transactions, productIndex(products))
	assert.Equal(t, 35.0, profit)
}

func TestProfitDefaultsQuantityToOne(t *testing.T) {
	products := []models.Product{{ID: "p1", BuyPrice: 10, SellPrice: 18}}
	transactions := []models.Transaction{saleAt(reportNow, 18, 0, "p1", "Bread")}

	assert.Equal(t, 8.0, profitContribution(transactions, productIndex(products)))
}

func TestMethodBreakdown(t *testing.T) {
	transactions := []models.Transaction{
		saleAt(reportNow, 100, 1, "", ""),
		{Type: models.TransactionSale, Amount: 40, Method: models.MethodMTNMomo, CreatedAt: reportNow},
		{Type: models.TransactionSale, Amount: 60, Method: models.MethodMTNMomo, CreatedAt: reportNow},
		expenseAt(reportNow, 500), // expenses never count
	}

	breakdown := methodBreakdown(transactions)
	assert.Equal(t, 100.0, breakdown[models.MethodCash])
	assert.Equal(t, 100.0, breakdown[models.MethodMTNMomo])
	assert.Equal(t, 0.0, breakdown[models.MethodAirtelMoney])
}

func TestTopSellersRanking(t *testing.T) {
	var transactions []models.Transaction
	for i := 0; i < 5; i++ {
		transactions = append(transactions, saleAt(reportNow.AddDate(0, 0, -i), 20, 1, "p1", "Bread"))
	}
	for i := 0; i < 3; i++ {
		transactions = append(transactions, saleAt(reportNow.AddDate(0, 0, -i), 15, 1, "p2", "Milk"))
	}
	// Outside the 30-day window, must not count.
	transactions = append(transactions, saleAt(reportNow.AddDate(0, 0, -45), 20, 1, "p1", "Bread"))

	ranks := topSellers(transactions, reportNow)
	assert.Len(t, ranks, 2)
	assert.Equal(t, SellerRank{Name: "Bread", Count: 5}, ranks[0])
	assert.Equal(t, SellerRank{Name: "Milk", Count: 3}, ranks[1])
}

func TestTopSellersTiesKeepFirstEncounteredOrder(t *testing.T) {
	transactions := []models.Transaction{
		saleAt(reportNow, 10, 1, "p1", "Bread"),
		saleAt(reportNow, 10, 1, "p2", "Milk"),
		saleAt(reportNow, 10, 1, "p2", "Milk"),
		saleAt(reportNow, 10, 1, "p1", "Bread"),
		saleAt(reportNow, 10, 1, "p3", "Eggs"),
		saleAt(reportNow, 10, 1, "p3", "Eggs"),
		saleAt(reportNow, 10, 1, "p4", "Sugar"),
	}

	ranks := topSellers(transactions, reportNow)
	assert.Len(t, ranks, 3)
	assert.Equal(t, "Bread", ranks[0].Name)
	assert.Equal(t, "Milk", ranks[1].Name)
	assert.Equal(t, "Eggs", ranks[2].Name)
}

func TestLowStockProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Plenty", StockCount: 48, MinStock: 12},
		{Name: "At threshold", StockCount: 10, MinStock: 10},
		{Name: "Below", StockCount: 5, MinStock: 10},
	}

	low := lowStockProducts(products)
	assert.Len(t, low, 2)
	assert.Equal(t, "At threshold", low[0].Name)
	assert.Equal(t, "Below", low[1].Name)
}

func TestInventoryValueAtCost(t *testing.T) {
	products := []models.Product{
		{BuyPrice: 15, SellPrice: 20, StockCount: 48},
		{BuyPrice: 65, SellPrice: 85, StockCount: 20},
	}

	assert.Equal(t, 15.0*48+65.0*20, inventoryValue(products))
}
