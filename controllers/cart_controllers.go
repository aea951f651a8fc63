package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/services"
	"github.com/forkpoint/restaurant-pos/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// getOrCreateCart loads the acting waiter's cart, creating an empty one on
// first touch. Exactly one cart exists per waiter.
func getOrCreateCart(db *gorm.DB, waiterID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Lines.Extras").Preload("Table").
		Where("waiter_id = ?", waiterID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{WaiterID: waiterID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func waiterID(c *gin.Context) (uint, error) {
	idInterface, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user id not found in context")
	}
	id, ok := idInterface.(uint)
	if !ok {
		return 0, errors.New("invalid user id type")
	}
	return id, nil
}

// GetCart returns the waiter's current cart.
func (cc *CartController) GetCart(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Current cart", gin.H{
		"cart":     cart,
		"subtotal": services.Subtotal(cart.Lines),
	})
}

// UpdateCart holds the draft customer name on the cart.
func (cc *CartController) UpdateCart(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		CustomerName *string `json:"customer_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.CustomerName != nil {
		cart.CustomerName = *req.CustomerName
	}
	if err := cc.DB.Save(cart).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cart)
}

// AssignTable points the cart at the table the waiter is working.
// A null table_id clears the assignment (cancel flow).
func (cc *CartController) AssignTable(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		TableID *uint `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.TableID != nil {
		var table models.Table
		if err := cc.DB.First(&table, *req.TableID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		cart.TableID = &table.ID
		cart.Table = &table
	} else {
		cart.TableID = nil
		cart.Table = nil
	}

	if err := cc.DB.Save(cart).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table assignment updated", cart)
}

// AddItem adds a menu item with selected extras to the cart. A line with
// the same menu item and extras-set merges by summing quantity; any other
// extras selection starts a distinct line.
func (cc *CartController) AddItem(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity"`
		ExtraIDs   []uint `json:"extra_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be positive"))
		return
	}

	var item models.MenuItem
	if err := cc.DB.Preload("Extras").First(&item, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Selected extras must belong to this menu item.
	available := make(map[uint]models.MenuExtra, len(item.Extras))
	for _, extra := range item.Extras {
		available[extra.ID] = extra
	}
	selected := make([]models.MenuExtra, 0, len(req.ExtraIDs))
	selectedIDs := make([]uint, 0, len(req.ExtraIDs))
	seen := make(map[uint]bool, len(req.ExtraIDs))
	for _, id := range req.ExtraIDs {
		extra, ok := available[id]
		if !ok {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("extra %d does not belong to menu item %d", id, item.ID))
			return
		}
		// Repeated ids count once.
		if seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, extra)
		selectedIDs = append(selectedIDs, id)
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	key := services.LineKey(item.ID, selectedIDs)
	for i := range cart.Lines {
		line := &cart.Lines[i]
		existingIDs := make([]uint, len(line.Extras))
		for j, extra := range line.Extras {
			existingIDs[j] = extra.ExtraID
		}
		if line.MenuItemID == item.ID && services.LineKey(line.MenuItemID, existingIDs) == key {
			line.Quantity += req.Quantity
			if err := cc.DB.Save(line).Error; err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			utils.RespondJSON(c, http.StatusOK, "Line quantity increased", gin.H{
				"cart":     cart,
				"subtotal": services.Subtotal(cart.Lines),
			})
			return
		}
	}

	// Prices are snapshots: later menu edits never change this line.
	line := models.CartLine{
		CartID:     cart.ID,
		LineKey:    uuid.New().String(),
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   req.Quantity,
	}
	for _, extra := range selected {
		line.Extras = append(line.Extras, models.CartLineExtra{
			ExtraID: extra.ID,
			Name:    extra.Name,
			Price:   extra.Price,
		})
	}

	if err := cc.DB.Create(&line).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	cart.Lines = append(cart.Lines, line)

	utils.RespondJSON(c, http.StatusCreated, "Line added", gin.H{
		"cart":     cart,
		"subtotal": services.Subtotal(cart.Lines),
	})
}

// UpdateLineQuantity replaces a line's quantity. Zero or negative
// behaves exactly like removing the line.
func (cc *CartController) UpdateLineQuantity(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	line, err := findCartLine(cart, c.Param("line_key"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if *req.Quantity <= 0 {
		if err := cc.DB.Select("Extras").Delete(line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else {
		line.Quantity = *req.Quantity
		if err := cc.DB.Save(line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if cart, err = getOrCreateCart(cc.DB, wid); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line updated", gin.H{
		"cart":     cart,
		"subtotal": services.Subtotal(cart.Lines),
	})
}

// RemoveLine deletes one line from the cart.
func (cc *CartController) RemoveLine(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	line, err := findCartLine(cart, c.Param("line_key"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Select("Extras").Delete(line).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if cart, err = getOrCreateCart(cc.DB, wid); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line removed", gin.H{
		"cart":     cart,
		"subtotal": services.Subtotal(cart.Lines),
	})
}

// ClearCart drops every line, the draft customer name and the table
// assignment (explicit cancel).
func (cc *CartController) ClearCart(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := clearCart(cc.DB, cart); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cart)
}

// GetTotals computes subtotal, and with ?code= the discount and total.
func (cc *CartController) GetTotals(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cart, err := getOrCreateCart(cc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	subtotal := services.Subtotal(cart.Lines)
	result := gin.H{
		"subtotal":        subtotal,
		"discount_amount": 0.0,
		"total":           subtotal,
	}

	if code := c.Query("code"); code != "" {
		discount, err := findUsableDiscount(cc.DB, code)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		amount := services.DiscountAmount(subtotal, discount)
		result["discount_code"] = discount.Code
		result["discount_amount"] = amount
		result["total"] = services.Round2(subtotal - amount)
	}

	utils.RespondJSON(c, http.StatusOK, "Cart totals", result)
}

func findCartLine(cart *models.Cart, lineKey string) (*models.CartLine, error) {
	for i := range cart.Lines {
		if cart.Lines[i].LineKey == lineKey {
			return &cart.Lines[i], nil
		}
	}
	return nil, fmt.Errorf("cart line not found: %s", lineKey)
}

// clearCart empties a cart in place: lines, draft name, table pointer.
func clearCart(db *gorm.DB, cart *models.Cart) error {
	var lineIDs []uint
	for _, line := range cart.Lines {
		lineIDs = append(lineIDs, line.ID)
	}
	if len(lineIDs) > 0 {
		if err := db.Where("cart_line_id IN ?", lineIDs).Delete(&models.CartLineExtra{}).Error; err != nil {
			return err
		}
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
	}

	cart.Lines = nil
	cart.CustomerName = ""
	cart.TableID = nil
	cart.Table = nil
	return db.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{"customer_name": "", "table_id": nil}).Error
}
