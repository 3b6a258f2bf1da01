package models

import "time"

const (
	RoleOwner       = "OWNER"
	RoleManager     = "MANAGER"
	RoleSalesPerson = "SALES_PERSON"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TierFree = "FREE"
	TierPaid = "PAID"
)

// User is an account scoped to a business. Exactly one OWNER exists per
// business name: the first registrant of the name. The password hash is
// never serialized.
type User struct {
	ID           string    `json:"id" gorm:"primary_key"`
	FullName     string    `json:"full_name" gorm:"not null"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Password     string    `json:"-" gorm:"not null"`
	BusinessName string    `json:"business_name" gorm:"not null;index"`
	Role         string    `json:"role" gorm:"not null"`
	Tier         string    `json:"tier" gorm:"not null"`
	Status       string    `json:"status" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleSalesPerson:
		return true
	}
	return false
}

// ValidStatusChange enforces the approval state machine:
// PENDING -> APPROVED, PENDING -> REJECTED, APPROVED -> REJECTED.
// REJECTED is terminal and nothing re-enters PENDING.
func ValidStatusChange(from, to string) bool {
	switch {
	case from == StatusPending && to == StatusApproved:
		return true
	case from == StatusPending && to == StatusRejected:
		return true
	case from == StatusApproved && to == StatusRejected:
		return true
	}
	return false
}
