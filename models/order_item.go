package models

import "time"

// OrderLine is a line item frozen into a submitted order. It carries the
// same price snapshots the cart line held at submit time.
type OrderLine struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	OrderID    uint             `gorm:"not null;index" json:"order_id"`
	LineKey    string           `gorm:"type:varchar(64);not null" json:"line_key"`
	MenuItemID uint             `gorm:"not null" json:"menu_item_id"`
	Name       string           `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice  float64          `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity   int              `gorm:"not null" json:"quantity"`
	Extras     []OrderLineExtra `gorm:"foreignKey:OrderLineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"extras"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
}

type OrderLineExtra struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderLineID uint    `gorm:"not null;index" json:"order_line_id"`
	ExtraID     uint    `gorm:"not null" json:"extra_id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}
