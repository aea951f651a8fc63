package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllItems lists the inventory ledger.
func (ic *InventoryController) GetAllItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory items", items)
}

// GetItemByID returns one supply item.
func (ic *InventoryController) GetItemByID(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item detail", item)
}

// GetLowStockItems lists supplies at or below the low-stock threshold,
// feeding the back-office alert banner.
func (ic *InventoryController) GetLowStockItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	low := make([]models.InventoryItem, 0)
	for _, item := range items {
		if item.LowStock() {
			low = append(low, item)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Low stock items", low)
}

// CreateItem adds a supply item. Stock may never exceed capacity.
func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
		Stock    int    `json:"stock" binding:"min=0"`
		MaxStock int    `json:"max_stock" binding:"required,gt=0"`
		Supplier string `json:"supplier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Stock > req.MaxStock {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("stock %d exceeds max stock %d", req.Stock, req.MaxStock))
		return
	}

	item := models.InventoryItem{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		MaxStock: req.MaxStock,
		Supplier: req.Supplier,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// UpdateItem edits a supply item, re-checking the stock invariant.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
		Stock    *int    `json:"stock"`
		MaxStock *int    `json:"max_stock"`
		Supplier *string `json:"supplier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.MaxStock != nil {
		item.MaxStock = *req.MaxStock
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}

	if item.Stock < 0 || item.MaxStock <= 0 || item.Stock > item.MaxStock {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("stock %d must be between 0 and max stock %d", item.Stock, item.MaxStock))
		return
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// DeleteItem removes a supply item.
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	var item models.InventoryItem
	if err := ic.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", gin.H{"item_id": item.ID})
}
