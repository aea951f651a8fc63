package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

// Seed fills an empty database with the fixed table registry and, unless
// SEED_DEMO_DATA=false, a demo menu, discount codes, inventory and one
// user per role. Seeding is idempotent: a non-empty registry is left alone.
func Seed(db *gorm.DB) error {
	var tableCount int64
	if err := db.Model(&models.Table{}).Count(&tableCount).Error; err != nil {
		return err
	}
	if tableCount > 0 {
		return nil
	}

	if err := seedTables(db); err != nil {
		return err
	}

	if os.Getenv("SEED_DEMO_DATA") == "false" {
		return nil
	}

	if err := seedMenu(db); err != nil {
		return err
	}
	if err := seedDiscounts(db); err != nil {
		return err
	}
	if err := seedInventory(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}

	utils.InfoLogger.Println("Seed data created.")
	return nil
}

// seedTables creates the fixed 12-table registry. Tables are never
// created or deleted at runtime.
func seedTables(db *gorm.DB) error {
	names := []string{
		"Table 1", "Table 2", "Table 3", "Table 4", "Table 5", "Table 6",
		"Table 7", "Table 8", "Table 9", "Table 10", "Table 11", "Table 12",
	}
	for _, name := range names {
		table := models.Table{Name: name, Status: models.TableAvailable}
		if err := db.Create(&table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedMenu(db *gorm.DB) error {
	items := []models.MenuItem{
		{
			Name:        "Bruschetta",
			Description: "Grilled bread, tomatoes, garlic and basil",
			Price:       8.50,
			Category:    models.CategoryAppetizer,
		},
		{
			Name:        "Pizza Margherita",
			Description: "Tomato, mozzarella and fresh basil",
			Price:       16.50,
			Category:    models.CategoryMain,
			Extras: []models.MenuExtra{
				{Name: "Pepperoni", Price: 3.00},
				{Name: "Extra Mozzarella", Price: 2.50},
			},
		},
		{
			Name:        "Spaghetti Carbonara",
			Description: "Guanciale, egg and pecorino",
			Price:       14.00,
			Category:    models.CategoryMain,
			Extras: []models.MenuExtra{
				{Name: "Extra Guanciale", Price: 3.50},
			},
		},
		{
			Name:        "Tiramisu",
			Description: "Espresso-soaked ladyfingers and mascarpone",
			Price:       7.00,
			Category:    models.CategoryDessert,
		},
		{
			Name:     "House Red Wine",
			Price:    6.00,
			Category: models.CategoryDrink,
		},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDiscounts(db *gorm.DB) error {
	discounts := []models.Discount{
		{Name: "Tuesday Special", Code: "TUESDAY20", Kind: models.DiscountPercentage, Amount: 20, Active: true},
		{Name: "Ten Off", Code: "TENOFF", Kind: models.DiscountFixed, Amount: 10, Active: true},
	}
	for i := range discounts {
		if err := db.Create(&discounts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedInventory(db *gorm.DB) error {
	items := []models.InventoryItem{
		{Name: "Flour", Category: "dry goods", Stock: 40, MaxStock: 50, Supplier: "Molino Rossi"},
		{Name: "Mozzarella", Category: "dairy", Stock: 6, MaxStock: 40, Supplier: "Caseificio Blu"},
		{Name: "Tomatoes", Category: "produce", Stock: 25, MaxStock: 30, Supplier: "Orto Verde"},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, role string
	}{
		{"Ada Admin", "admin@example.com", models.RoleAdmin},
		{"Carlo Cook", "cook@example.com", models.RoleCook},
		{"Wanda Waiter", "waiter@example.com", models.RoleWaiter},
		{"Cassie Cashier", "cashier@example.com", models.RoleCashier},
	}

	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, u := range users {
		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
			Role:     u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
