package models

import "time"

// InventoryItem tracks a supply item for display and low-stock alerting.
// Stock is never decremented by sales; the link between menu items and
// supplies is a keyword heuristic used only in reports.
type InventoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	Stock     int       `gorm:"not null" json:"stock"`
	MaxStock  int       `gorm:"not null" json:"max_stock"`
	Supplier  string    `gorm:"type:varchar(255)" json:"supplier"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// LowStock reports whether stock has fallen to 20% of capacity or below.
func (i *InventoryItem) LowStock() bool {
	if i.MaxStock <= 0 {
		return false
	}
	return i.Stock*5 <= i.MaxStock
}
