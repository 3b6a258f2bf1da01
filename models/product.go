package models

import "time"

// Product is a catalog entry. StockCount is the authoritative inventory
// level and is only decremented as a side effect of recording a sale.
type Product struct {
	ID           string    `json:"id" gorm:"primary_key"`
	BusinessName string    `json:"business_name" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Category     string    `json:"category"`
	BuyPrice     float64   `json:"buy_price"`
	SellPrice    float64   `json:"sell_price"`
	StockCount   int       `json:"stock_count"`
	MinStock     int       `json:"min_stock"`
	CreatedAt    time.Time `json:"created_at"`
}
