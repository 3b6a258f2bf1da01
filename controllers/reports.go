package controllers

import (
	"sort"
	"time"

	"github.com/victorjere/BizTrack-SMEs/models"
)

// fallbackMargin is the assumed margin on a sale with no product linkage.
// An approximation for display purposes, not an accounting fact.
const fallbackMargin = 0.2

const popularityDays = 30

type SellerRank struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func validWindow(window string) bool {
	switch window {
	case "today", "week", "month", "all":
		return true
	}
	return false
}

// windowStart returns the inclusive lower bound of a reporting window,
// computed from now at call time. ok is false for the all-time window.
func windowStart(now time.Time, window string) (start time.Time, ok bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch window {
	case "week":
		// calendar week starting Sunday
		return midnight.AddDate(0, 0, -int(now.Weekday())), true
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case "all":
		return time.Time{}, false
	default: // today
		return midnight, true
	}
}

func filterWindow(transactions []models.Transaction, now time.Time, window string) []models.Transaction {
	start, ok := windowStart(now, window)
	if !ok {
		return transactions
	}
	var filtered []models.Transaction
	for _, t := range transactions {
		if !t.CreatedAt.Before(start) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func sumByType(transactions []models.Transaction, transactionType string) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type == transactionType {
			total += t.Amount
		}
	}
	return total
}

func productIndex(products []models.Product) map[string]models.Product {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// profitContribution sums per-line profit over SALE entries. A line whose
// product still exists contributes (sellPrice - buyPrice) * quantity; a
// line with no surviving linkage falls back to amount * fallbackMargin.
func profitContribution(transactions []models.Transaction, index map[string]models.Product) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type != models.TransactionSale {
			continue
		}
		quantity := t.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		if p, found := index[t.ItemID]; found && t.ItemID != "" {
			total += (p.SellPrice - p.BuyPrice) * float64(quantity)
		} else {
			total += t.Amount * fallbackMargin
		}
	}
	return total
}

// methodBreakdown sums SALE amounts per payment method. Every method is
// present in the result even when zero.
func methodBreakdown(transactions []models.Transaction) map[string]float64 {
	breakdown := map[string]float64{
		models.MethodCash:        0,
		models.MethodMTNMomo:     0,
		models.MethodAirtelMoney: 0,
	}
	for _, t := range transactions {
		if t.Type == models.TransactionSale {
			breakdown[t.Method] += t.Amount
		}
	}
	return breakdown
}

// topSellers counts SALE entries per item name over the trailing 30 days
// and keeps the top three, ties broken by first-encountered order.
func topSellers(transactions []models.Transaction, now time.Time) []SellerRank {
	since := now.AddDate(0, 0, -popularityDays)

	counts := make(map[string]int)
	var order []string
	for _, t := range transactions {
		if t.Type != models.TransactionSale || t.ItemName == "" {
			continue
		}
		if t.CreatedAt.Before(since) {
			continue
		}
		if _, seen := counts[t.ItemName]; !seen {
			order = append(order, t.ItemName)
		}
		counts[t.ItemName]++
	}

	ranks := make([]SellerRank, 0, len(order))
	for _, name := range order {
		ranks = append(ranks, SellerRank{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Count > ranks[j].Count
	})

	if len(ranks) > 3 {
		ranks = ranks[:3]
	}
	return ranks
}

func lowStockProducts(products []models.Product) []models.Product {
	var low []models.Product
	for _, p := range products {
		if p.StockCount <= p.MinStock {
			low = append(low, p)
		}
	}
	return low
}

// inventoryValue values stock at cost, not at sell price.
func inventoryValue(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.BuyPrice * float64(p.StockCount)
	}
	return total
}
