package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/kds"
	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/services"
	"github.com/forkpoint/restaurant-pos/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// statusRoles maps a target status to the roles allowed to request it.
// Admin passes everything.
var statusRoles = map[string][]string{
	models.OrderPreparing: {models.RoleCook},
	models.OrderReady:     {models.RoleCook},
	models.OrderDelivered: {models.RoleWaiter},
	models.OrderPaid:      {models.RoleCashier},
}

// SubmitOrder snapshots the waiter's cart into a new order. The cart must
// be non-empty and pointed at a table; the table flips to occupied and
// the cart is cleared.
func (oc *OrderController) SubmitOrder(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		CustomerName  string `json:"customer_name"`
		PaymentMethod string `json:"payment_method" binding:"required"`
		InvoiceOption string `json:"invoice_option"`
		DiscountCode  string `json:"discount_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown payment method: %s", req.PaymentMethod))
		return
	}
	if req.InvoiceOption == "" {
		req.InvoiceOption = models.InvoiceNone
	}
	if !models.ValidInvoiceOption(req.InvoiceOption) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown invoice option: %s", req.InvoiceOption))
		return
	}

	var waiter models.User
	if err := oc.DB.First(&waiter, wid).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("waiter account not found"))
		return
	}

	cart, err := getOrCreateCart(oc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(cart.Lines) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty, nothing to submit"))
		return
	}
	if cart.TableID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no table assigned to this order"))
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, *cart.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = cart.CustomerName
	}

	var discount *models.Discount
	if req.DiscountCode != "" {
		discount, err = findUsableDiscount(oc.DB, req.DiscountCode)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	subtotal := services.Subtotal(cart.Lines)
	discountAmount := services.DiscountAmount(subtotal, discount)
	now := time.Now()

	order := models.Order{
		OrderNumber:    services.NewOrderNumber(now),
		TableID:        table.ID,
		TableName:      table.Name,
		CustomerName:   customerName,
		WaiterID:       waiter.ID,
		WaiterName:     waiter.Name,
		PaymentMethod:  req.PaymentMethod,
		InvoiceOption:  req.InvoiceOption,
		Status:         models.OrderNew,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          services.Round2(subtotal - discountAmount),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if discount != nil {
		code := discount.Code
		order.DiscountCode = &code
	}

	for _, line := range cart.Lines {
		orderLine := models.OrderLine{
			LineKey:    line.LineKey,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		}
		for _, extra := range line.Extras {
			orderLine.Extras = append(orderLine.Extras, models.OrderLineExtra{
				ExtraID: extra.ExtraID,
				Name:    extra.Name,
				Price:   extra.Price,
			})
		}
		order.Lines = append(order.Lines, orderLine)
	}

	tx := oc.DB.Begin()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.Status = models.TableOccupied
	if err := tx.Save(&table).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if discount != nil {
		if err := tx.Model(&models.Discount{}).Where("id = ?", discount.ID).
			Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := clearCartTx(tx, cart); err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx.Commit()

	kds.BroadcastOrderUpdate(order)
	kds.BroadcastTableUpdate(table)
	kds.BroadcastStaffNotification(fmt.Sprintf("New order %s for %s (%s)",
		order.OrderNumber, table.Name, utils.FormatCurrency(order.Total)))

	utils.InfoLogger.Printf("Order %s submitted by %s: subtotal=%.2f discount=%.2f total=%.2f",
		order.OrderNumber, waiter.Name, order.Subtotal, order.DiscountAmount, order.Total)

	utils.RespondJSON(c, http.StatusCreated, "Order submitted", order)
}

// GetAllOrders lists orders newest first, optionally filtered by status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Lines.Extras").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status: %s", status))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID returns one order with its lines.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Lines.Extras").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus moves an order along the lifecycle. Transitions are
// checked against the state machine and the caller's role; a paid order
// frees its table.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status      string `json:"status" binding:"required"`
		PrepMinutes *int   `json:"prep_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status: %s", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Lines.Extras").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Transition validity before the role gate: an impossible move is a 400
	// no matter who asks for it.
	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot transition order from %s to %s", order.Status, req.Status))
		return
	}

	role := c.GetString("role")
	if role != models.RoleAdmin {
		allowed := false
		for _, r := range statusRoles[req.Status] {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	order.Status = req.Status
	if req.Status == models.OrderPreparing && req.PrepMinutes != nil {
		if *req.PrepMinutes <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("prep_minutes must be positive"))
			return
		}
		order.PrepTimeMinutes = req.PrepMinutes
	}
	order.UpdatedAt = time.Now()

	tx := oc.DB.Begin()
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Payment completes the table's cycle: occupied -> available.
	var table models.Table
	if req.Status == models.OrderPaid {
		if err := tx.First(&table, order.TableID).Error; err == nil {
			table.Status = models.TableAvailable
			if err := tx.Save(&table).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}
	tx.Commit()

	kds.BroadcastOrderUpdate(order)
	if req.Status == models.OrderPaid && table.ID != 0 {
		kds.BroadcastTableUpdate(table)
	}
	if req.Status == models.OrderReady {
		kds.BroadcastStaffNotification(fmt.Sprintf("Order %s is ready to serve", order.OrderNumber))
	}

	utils.InfoLogger.Printf("Order %s moved to %s by %s", order.OrderNumber, order.Status, role)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder cancels an order. Allowed only while the order is still new.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Lines").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderNew {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("only new orders can be cancelled, order is %s", order.Status))
		return
	}

	tx := oc.DB.Begin()
	if err := deleteOrderTx(tx, &order); err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var table models.Table
	if err := tx.First(&table, order.TableID).Error; err == nil {
		table.Status = models.TableAvailable
		if err := tx.Save(&table).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	if table.ID != 0 {
		kds.BroadcastTableUpdate(table)
	}
	kds.BroadcastStaffNotification(fmt.Sprintf("Order %s cancelled", order.OrderNumber))

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"order_id": order.ID})
}

// LoadOrderForEdit pops a new order out of the submitted list and
// re-hydrates the calling waiter's cart with its lines and customer name
// so it can be modified and resubmitted. The table stays occupied.
func (oc *OrderController) LoadOrderForEdit(c *gin.Context) {
	wid, err := waiterID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Lines.Extras").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderNew {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("only new orders can be edited, order is %s", order.Status))
		return
	}

	cart, err := getOrCreateCart(oc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx := oc.DB.Begin()

	// Whatever the waiter had in progress is replaced by the edited order.
	if err := clearCartTx(tx, cart); err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tableID := order.TableID
	if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"customer_name": order.CustomerName,
			"table_id":      tableID,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, orderLine := range order.Lines {
		line := models.CartLine{
			CartID:     cart.ID,
			LineKey:    uuid.New().String(),
			MenuItemID: orderLine.MenuItemID,
			Name:       orderLine.Name,
			UnitPrice:  orderLine.UnitPrice,
			Quantity:   orderLine.Quantity,
		}
		for _, extra := range orderLine.Extras {
			line.Extras = append(line.Extras, models.CartLineExtra{
				ExtraID: extra.ExtraID,
				Name:    extra.Name,
				Price:   extra.Price,
			})
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := deleteOrderTx(tx, &order); err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx.Commit()

	cart, err = getOrCreateCart(oc.DB, wid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s loaded back into cart of waiter %d", order.OrderNumber, wid)
	utils.RespondJSON(c, http.StatusOK, "Order loaded for editing", gin.H{
		"order": order,
		"cart":  cart,
	})
}

// GetKitchenDisplay shows the cook's queue: new, preparing and ready
// orders, oldest first.
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Lines.Extras").
		Where("status IN ?", []string{models.OrderNew, models.OrderPreparing, models.OrderReady}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}

// clearCartTx is clearCart inside an existing transaction.
func clearCartTx(tx *gorm.DB, cart *models.Cart) error {
	return clearCart(tx, cart)
}

func deleteOrderTx(tx *gorm.DB, order *models.Order) error {
	var lineIDs []uint
	for _, line := range order.Lines {
		lineIDs = append(lineIDs, line.ID)
	}
	if len(lineIDs) > 0 {
		if err := tx.Where("order_line_id IN ?", lineIDs).Delete(&models.OrderLineExtra{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Order{}, order.ID).Error
}
