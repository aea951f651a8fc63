package models

import "time"

// Menu categories
const (
	CategoryAppetizer = "appetizer"
	CategoryMain      = "main"
	CategoryDessert   = "dessert"
	CategoryDrink     = "drink"
)

type MenuItem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Price       float64     `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string      `gorm:"type:varchar(20);not null" json:"category"`
	ImageURL    string      `gorm:"type:varchar(255)" json:"image_url"`
	Extras      []MenuExtra `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"extras"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

// MenuExtra is a priced add-on owned by exactly one menu item.
type MenuExtra struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"not null;index" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}

// ValidCategory reports whether category is a known menu category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryDrink:
		return true
	}
	return false
}
