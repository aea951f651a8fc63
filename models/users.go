package models

import "time"

// User roles
const (
	RoleAdmin    = "admin"
	RoleCook     = "cook"
	RoleCustomer = "customer"
	RoleWaiter   = "waiter"
	RoleCashier  = "cashier"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCook, RoleCustomer, RoleWaiter, RoleCashier:
		return true
	}
	return false
}
