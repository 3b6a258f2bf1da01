package models

import "time"

const (
	TransactionSale    = "SALE"
	TransactionExpense = "EXPENSE"
)

const (
	MethodCash        = "CASH"
	MethodMTNMomo     = "MTN_MOMO"
	MethodAirtelMoney = "AIRTEL_MONEY"
)

// Transaction is a ledger entry. ItemID may reference a Product; ItemName
// is a snapshot taken at recording time so the entry stays readable after
// the product is deleted. Entries are immutable except for deletion.
type Transaction struct {
	ID           string    `json:"id" gorm:"primary_key"`
	BusinessName string    `json:"business_name" gorm:"not null;index"`
	Type         string    `json:"type" gorm:"not null;index"`
	Amount       float64   `json:"amount" gorm:"not null"`
	Quantity     int       `json:"quantity"`
	Method       string    `json:"method"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Note         string    `json:"note"`
	RecordedBy   string    `json:"recorded_by"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

func ValidTransactionType(t string) bool {
	return t == TransactionSale || t == TransactionExpense
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodMTNMomo, MethodAirtelMoney:
		return true
	}
	return false
}
