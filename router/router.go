package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/controllers"
	"github.com/forkpoint/restaurant-pos/middlewares"
	"github.com/forkpoint/restaurant-pos/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	discountCtrl := controllers.NewDiscountController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	reportCtrl := controllers.NewReportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer-facing menu browsing needs no login.
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenusByCategory)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/by-status", tableCtrl.FindTablesByStatus)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)

	// USERS (admin)
	adminUsers := api.Group("/users", middlewares.RequireRoles())
	{
		adminUsers.GET("", userCtrl.GetAllUsers)
		adminUsers.GET("/:user_id", userCtrl.GetUserByID)
		adminUsers.PATCH("/:user_id", userCtrl.UpdateUser)
		adminUsers.DELETE("/:user_id", userCtrl.DeleteUser)
	}

	// MENU CATALOG (admin back office)
	adminMenus := api.Group("/menus", middlewares.RequireRoles())
	{
		adminMenus.POST("", menuCtrl.CreateMenu)
		adminMenus.GET("/:menu_id", menuCtrl.GetMenuByID)
		adminMenus.PATCH("/:menu_id", menuCtrl.UpdateMenu)
		adminMenus.DELETE("/:menu_id", menuCtrl.DeleteMenu)
	}

	// CART (waiter order entry)
	cart := api.Group("/cart", middlewares.RequireRoles(models.RoleWaiter))
	{
		cart.GET("", cartCtrl.GetCart)
		cart.PATCH("", cartCtrl.UpdateCart)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/table", cartCtrl.AssignTable)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:line_key", cartCtrl.UpdateLineQuantity)
		cart.DELETE("/items/:line_key", cartCtrl.RemoveLine)
		cart.GET("/totals", cartCtrl.GetTotals)
	}

	// ORDERS
	staffRoles := []string{models.RoleWaiter, models.RoleCook, models.RoleCashier}
	orders := api.Group("/orders", middlewares.RequireRoles(staffRoles...))
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		// Per-transition role checks happen in the controller.
		orders.POST("/:order_id/status", orderCtrl.UpdateOrderStatus)
	}
	api.POST("/orders", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.SubmitOrder)
	api.DELETE("/orders/:order_id", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.DeleteOrder)
	api.POST("/orders/:order_id/edit", middlewares.RequireRoles(models.RoleWaiter), orderCtrl.LoadOrderForEdit)

	// KITCHEN (cook)
	api.GET("/kitchen/display", middlewares.RequireRoles(models.RoleCook), orderCtrl.GetKitchenDisplay)

	// TABLES (staff)
	tables := api.Group("/tables", middlewares.RequireRoles(staffRoles...))
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/stats", tableCtrl.GetTableStats)
		tables.GET("/:table_id", tableCtrl.GetTableByID)
		tables.PATCH("/:table_id", tableCtrl.UpdateTableStatus)
	}

	// DISCOUNTS
	api.GET("/discounts/active", middlewares.RequireRoles(staffRoles...), discountCtrl.GetActiveDiscounts)
	adminDiscounts := api.Group("/discounts", middlewares.RequireRoles())
	{
		adminDiscounts.GET("", discountCtrl.GetAllDiscounts)
		adminDiscounts.POST("", discountCtrl.CreateDiscount)
		adminDiscounts.PATCH("/:discount_id/status", discountCtrl.SetDiscountStatus)
		adminDiscounts.DELETE("/:discount_id", discountCtrl.DeleteDiscount)
	}

	// INVENTORY (admin back office)
	inventory := api.Group("/inventory", middlewares.RequireRoles())
	{
		inventory.GET("", inventoryCtrl.GetAllItems)
		inventory.POST("", inventoryCtrl.CreateItem)
		inventory.GET("/low-stock", inventoryCtrl.GetLowStockItems)
		inventory.GET("/:item_id", inventoryCtrl.GetItemByID)
		inventory.PATCH("/:item_id", inventoryCtrl.UpdateItem)
		inventory.DELETE("/:item_id", inventoryCtrl.DeleteItem)
	}

	// REPORTS (admin)
	reports := api.Group("", middlewares.RequireRoles())
	{
		reports.GET("/dashboard/stats", reportCtrl.GetDashboardStats)
		reports.GET("/reports/sales", reportCtrl.GetSalesReport)
		reports.GET("/reports/inventory", reportCtrl.GetInventoryReport)
	}

	// WebSocket endpoint for the kitchen display / staff notifications.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/:role", controllers.KDSHandler)
	}

	return r
}
