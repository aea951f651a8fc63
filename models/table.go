package models

import "time"

// Table statuses
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidTableStatus reports whether status is a known table status.
func ValidTableStatus(status string) bool {
	switch status {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}
