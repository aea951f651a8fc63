package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type extraReq struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// GetAllMenus lists the full catalog with extras.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Preload("Extras").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenusByCategory lists items for one category.
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	category := c.Query("category")
	if !models.ValidCategory(category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category: "+category))
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Preload("Extras").Where("category = ?", category).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items in category "+category, items)
}

// GetMenuByID returns one menu item with its extras.
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("Extras").First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", item)
}

// CreateMenu adds a sellable item with optional extras.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Price       float64    `json:"price" binding:"required,gt=0"`
		Category    string     `json:"category" binding:"required"`
		ImageURL    string     `json:"image_url"`
		Extras      []extraReq `json:"extras"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category: "+req.Category))
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	for _, extra := range req.Extras {
		item.Extras = append(item.Extras, models.MenuExtra{
			Name:  extra.Name,
			Price: extra.Price,
		})
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, utils.FormatCurrency(item.Price))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenu edits an item. If extras are provided they replace the
// existing set wholesale.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("Extras").First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string     `json:"name"`
		Description *string     `json:"description"`
		Price       *float64    `json:"price"`
		Category    *string     `json:"category"`
		ImageURL    *string     `json:"image_url"`
		Extras      *[]extraReq `json:"extras"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be positive"))
			return
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category: "+*req.Category))
			return
		}
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	tx := mc.DB.Begin()

	if req.Extras != nil {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.MenuExtra{}).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		item.Extras = nil
		for _, extra := range *req.Extras {
			item.Extras = append(item.Extras, models.MenuExtra{
				MenuItemID: item.ID,
				Name:       extra.Name,
				Price:      extra.Price,
			})
		}
	}

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenu removes an item and its extras.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Select("Extras").Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": item.ID})
}
