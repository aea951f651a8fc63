package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/config"
	"github.com/forkpoint/restaurant-pos/database"
	"github.com/forkpoint/restaurant-pos/middlewares"
	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/router"
	"github.com/forkpoint/restaurant-pos/services"
	"github.com/forkpoint/restaurant-pos/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	// Background low-stock watcher for the staff notification feed.
	stockMonitor := services.NewStockMonitor(db)
	stockMonitor.Start()
	defer stockMonitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.MenuExtra{},
		&models.Cart{},
		&models.CartLine{},
		&models.CartLineExtra{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderLineExtra{},
		&models.Discount{},
		&models.InventoryItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
