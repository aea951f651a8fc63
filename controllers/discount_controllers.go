package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/services"
	"github.com/forkpoint/restaurant-pos/utils"
)

type DiscountController struct {
	DB *gorm.DB
}

func NewDiscountController(db *gorm.DB) *DiscountController {
	return &DiscountController{DB: db}
}

// GetAllDiscounts lists every discount for the back office.
func (dc *DiscountController) GetAllDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := dc.DB.Find(&discounts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of discounts", discounts)
}

// GetActiveDiscounts lists the discounts selectable at checkout:
// active and not expired.
func (dc *DiscountController) GetActiveDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := dc.DB.Where("active = ?", true).Find(&discounts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	selectable := make([]models.Discount, 0, len(discounts))
	for _, d := range discounts {
		if !d.Expired(now) {
			selectable = append(selectable, d)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Active discounts", selectable)
}

// CreateDiscount adds a promotional code. The value string ("20%" or
// "$10.00") is parsed here, once; checkout works with the typed result.
func (dc *DiscountController) CreateDiscount(c *gin.Context) {
	var req struct {
		Name      string     `json:"name" binding:"required"`
		Code      string     `json:"code" binding:"required"`
		Value     string     `json:"value" binding:"required"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	kind, amount, err := services.ParseDiscountValue(req.Value)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Discount
	if err := dc.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("discount code already exists: "+code))
		return
	}

	discount := models.Discount{
		Name:      req.Name,
		Code:      code,
		Kind:      kind,
		Amount:    amount,
		Active:    true,
		ExpiresAt: req.ExpiresAt,
	}

	if err := dc.DB.Create(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Discount created: %s (%s %v)", discount.Code, discount.Kind, discount.Amount)
	utils.RespondJSON(c, http.StatusCreated, "Discount created", discount)
}

// SetDiscountStatus toggles a discount active or inactive.
func (dc *DiscountController) SetDiscountStatus(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var discount models.Discount
	if err := dc.DB.First(&discount, c.Param("discount_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	discount.Active = *req.Active
	if err := dc.DB.Save(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount status updated", discount)
}

// DeleteDiscount removes a code permanently.
func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	var discount models.Discount
	if err := dc.DB.First(&discount, c.Param("discount_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := dc.DB.Delete(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount deleted", gin.H{"discount_id": discount.ID})
}

// findUsableDiscount resolves a code (case-insensitive) to a discount that
// is active and not expired. Shared by cart totals and order submit.
func findUsableDiscount(db *gorm.DB, code string) (*models.Discount, error) {
	var discount models.Discount
	if err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&discount).Error; err != nil {
		return nil, errors.New("unknown discount code: " + code)
	}
	if !discount.Active {
		return nil, errors.New("discount code is not active: " + discount.Code)
	}
	if discount.Expired(time.Now()) {
		return nil, errors.New("discount code has expired: " + discount.Code)
	}
	return &discount, nil
}
