package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/controllers"
	"github.com/forkpoint/restaurant-pos/models"
)

func setupDiscountRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(authAs(1, models.RoleAdmin))

	ctrl := controllers.NewDiscountController(db)
	router.GET("/discounts", ctrl.GetAllDiscounts)
	router.GET("/discounts/active", ctrl.GetActiveDiscounts)
	router.POST("/discounts", ctrl.CreateDiscount)
	router.PATCH("/discounts/:discount_id/status", ctrl.SetDiscountStatus)
	router.DELETE("/discounts/:discount_id", ctrl.DeleteDiscount)
	return router
}

func TestCreateDiscountParsesValue(t *testing.T) {
	db := setupTestDB(t, "discountcreate")
	router := setupDiscountRouter(db)

	w := performJSON(router, "POST", "/discounts", map[string]interface{}{
		"name":  "Tuesday Special",
		"code":  "tuesday20",
		"value": "20%",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "TUESDAY20", data["code"])
	assert.Equal(t, "percentage", data["kind"])
	assert.Equal(t, float64(20), data["amount"])
	assert.Equal(t, true, data["active"])

	w = performJSON(router, "POST", "/discounts", map[string]interface{}{
		"name":  "Ten Off",
		"code":  "TENOFF",
		"value": "$10.00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "fixed", data["kind"])
	assert.Equal(t, float64(10), data["amount"])
}

func TestCreateDiscountRejectsBadValues(t *testing.T) {
	db := setupTestDB(t, "discountbadvalue")
	router := setupDiscountRouter(db)

	for _, value := range []string{"twenty", "0%", "150%", "$-5", ""} {
		w := performJSON(router, "POST", "/discounts", map[string]interface{}{
			"name":  "Broken",
			"code":  "BROKEN",
			"value": value,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "value %q should be rejected", value)
	}

	var count int64
	db.Model(&models.Discount{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateDiscountRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t, "discountdup")
	router := setupDiscountRouter(db)

	payload := map[string]interface{}{"name": "First", "code": "SUMMER", "value": "15%"}
	w := performJSON(router, "POST", "/discounts", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same code in a different case is still a duplicate.
	payload["code"] = "summer"
	w = performJSON(router, "POST", "/discounts", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActiveDiscountsExcludeDisabledAndExpired(t *testing.T) {
	db := setupTestDB(t, "discountactive")
	router := setupDiscountRouter(db)

	yesterday := time.Now().Add(-24 * time.Hour)
	assert.NoError(t, db.Create(&models.Discount{Name: "Live", Code: "LIVE",
		Kind: models.DiscountPercentage, Amount: 10, Active: true}).Error)
	assert.NoError(t, db.Create(&models.Discount{Name: "Disabled", Code: "DISABLED",
		Kind: models.DiscountPercentage, Amount: 10, Active: false}).Error)
	assert.NoError(t, db.Create(&models.Discount{Name: "Expired", Code: "EXPIRED",
		Kind: models.DiscountFixed, Amount: 5, Active: true, ExpiresAt: &yesterday}).Error)

	w := performJSON(router, "GET", "/discounts/active", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "LIVE", data[0].(map[string]interface{})["code"])

	// The back-office list still shows everything.
	w = performJSON(router, "GET", "/discounts", nil)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 3)
}

func TestSetDiscountStatusToggles(t *testing.T) {
	db := setupTestDB(t, "discounttoggle")
	router := setupDiscountRouter(db)

	discount := models.Discount{Name: "Happy Hour", Code: "HAPPY",
		Kind: models.DiscountPercentage, Amount: 25, Active: true}
	assert.NoError(t, db.Create(&discount).Error)

	w := performJSON(router, "PATCH", "/discounts/"+itoa(int(discount.ID))+"/status",
		map[string]interface{}{"active": false})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["data"].(map[string]interface{})["active"])

	w = performJSON(router, "GET", "/discounts/active", nil)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestExpiredCodeNotUsableAtCheckout(t *testing.T) {
	db := setupTestDB(t, "discountexpiredcheckout")
	waiterID, _, menuID, _ := seedCartFixtures(t, db)

	yesterday := time.Now().Add(-24 * time.Hour)
	assert.NoError(t, db.Create(&models.Discount{Name: "Expired", Code: "OLD20",
		Kind: models.DiscountPercentage, Amount: 20, Active: true, ExpiresAt: &yesterday}).Error)

	router := setupCartRouter(db, waiterID)
	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": menuID})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(router, "GET", "/cart/totals?code=OLD20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteDiscount(t *testing.T) {
	db := setupTestDB(t, "discountdelete")
	router := setupDiscountRouter(db)

	discount := models.Discount{Name: "Gone", Code: "GONE",
		Kind: models.DiscountFixed, Amount: 5, Active: true}
	assert.NoError(t, db.Create(&discount).Error)

	w := performJSON(router, "DELETE", "/discounts/"+itoa(int(discount.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "DELETE", "/discounts/"+itoa(int(discount.ID)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
