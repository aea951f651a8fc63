package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/services"
	"github.com/forkpoint/restaurant-pos/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GetDashboardStats aggregates counters for the back-office dashboard.
func (rc *ReportController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			New       int64 `json:"new"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Delivered int64 `json:"delivered"`
			Paid      int64 `json:"paid"`
		} `json:"order_stats"`
		TableStats    map[string]interface{} `json:"table_stats"`
		LowStockCount int                    `json:"low_stock_count"`
	}

	rc.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	rc.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderNew).Count(&stats.OrderStats.New)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPreparing).Count(&stats.OrderStats.Preparing)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderReady).Count(&stats.OrderStats.Ready)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderDelivered).Count(&stats.OrderStats.Delivered)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPaid).Count(&stats.OrderStats.Paid)

	// Revenue counts paid orders only.
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPaid).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TotalRevenue)
	rc.DB.Model(&models.Order{}).
		Where("status = ? AND DATE(created_at) = ?", models.OrderPaid, today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)

	stats.TableStats = tableStats(rc.DB)

	var supplies []models.InventoryItem
	rc.DB.Find(&supplies)
	for _, item := range supplies {
		if item.LowStock() {
			stats.LowStockCount++
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetSalesReport summarizes revenue and top selling items.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	var sales struct {
		TotalSales      float64 `json:"total_sales"`
		TotalOrders     int64   `json:"total_orders"`
		AverageOrder    float64 `json:"average_order"`
		TotalDiscounted float64 `json:"total_discounted"`
		TopSellingItems []struct {
			MenuItemID uint    `json:"menu_item_id"`
			Name       string  `json:"name"`
			Quantity   int     `json:"quantity"`
			Revenue    float64 `json:"revenue"`
		} `json:"top_selling_items"`
	}

	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPaid).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&sales.TotalSales)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPaid).Count(&sales.TotalOrders)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPaid).
		Select("COALESCE(SUM(discount_amount), 0)").Row().Scan(&sales.TotalDiscounted)

	if sales.TotalOrders > 0 {
		sales.AverageOrder = services.Round2(sales.TotalSales / float64(sales.TotalOrders))
	}

	rc.DB.Raw(`
		SELECT ol.menu_item_id, ol.name,
		SUM(ol.quantity) as quantity, SUM(ol.unit_price * ol.quantity) as revenue
		FROM order_lines ol
		JOIN orders o ON ol.order_id = o.id
		WHERE o.status = ?
		GROUP BY ol.menu_item_id, ol.name
		ORDER BY quantity DESC
		LIMIT 10
	`, models.OrderPaid).Scan(&sales.TopSellingItems)

	utils.RespondJSON(c, http.StatusOK, "Sales report", sales)
}

// GetInventoryReport maps each menu item to inventory supplies via the
// keyword-overlap heuristic. The matching is a display-only placeholder,
// kept as-is for report compatibility; it is not a bill of materials.
func (rc *ReportController) GetInventoryReport(c *gin.Context) {
	var menuItems []models.MenuItem
	if err := rc.DB.Find(&menuItems).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var supplies []models.InventoryItem
	if err := rc.DB.Find(&supplies).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type ingredientStatus struct {
		Name     string `json:"name"`
		Stock    int    `json:"stock"`
		MaxStock int    `json:"max_stock"`
		LowStock bool   `json:"low_stock"`
	}
	type menuStatus struct {
		MenuItemID  uint               `json:"menu_item_id"`
		Name        string             `json:"name"`
		Ingredients []ingredientStatus `json:"ingredients"`
		AnyLow      bool               `json:"any_low"`
	}

	report := make([]menuStatus, 0, len(menuItems))
	for _, item := range menuItems {
		entry := menuStatus{MenuItemID: item.ID, Name: item.Name}
		for _, supply := range services.MatchIngredients(item.Name, supplies) {
			low := supply.LowStock()
			entry.Ingredients = append(entry.Ingredients, ingredientStatus{
				Name:     supply.Name,
				Stock:    supply.Stock,
				MaxStock: supply.MaxStock,
				LowStock: low,
			})
			if low {
				entry.AnyLow = true
			}
		}
		report = append(report, entry)
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory report", report)
}
