package models

import "time"

// Cart is the in-progress order a waiter is building for a table.
// Exactly one cart exists per waiter; it is cleared on submit or cancel.
type Cart struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	WaiterID     uint       `gorm:"not null;uniqueIndex" json:"waiter_id"`
	TableID      *uint      `gorm:"index" json:"table_id,omitempty"`
	Table        *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CustomerName string     `gorm:"type:varchar(255)" json:"customer_name"`
	Lines        []CartLine `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"lines"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// CartLine is one (menu item, extras-set) pairing with a quantity.
// Prices are snapshots taken when the line was added, not live references.
type CartLine struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CartID     uint            `gorm:"not null;index" json:"cart_id"`
	LineKey    string          `gorm:"type:varchar(64);not null;index" json:"line_key"`
	MenuItemID uint            `gorm:"not null" json:"menu_item_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice  float64         `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Extras     []CartLineExtra `gorm:"foreignKey:CartLineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"extras"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

type CartLineExtra struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	CartLineID uint    `gorm:"not null;index" json:"cart_line_id"`
	ExtraID    uint    `gorm:"not null" json:"extra_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}
