package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/controllers"
	"github.com/forkpoint/restaurant-pos/models"
)

// seedCartFixtures creates a waiter, a table and the demo pizza with its
// pepperoni extra, returning the ids the tests need.
func seedCartFixtures(t *testing.T, db *gorm.DB) (waiterID, tableID, menuID, extraID uint) {
	t.Helper()

	waiter := models.User{Name: "Wanda Waiter", Email: "wanda@example.com", Password: "x", Role: models.RoleWaiter}
	if err := db.Create(&waiter).Error; err != nil {
		t.Fatal(err)
	}

	table := models.Table{Name: "Table 3", Status: models.TableAvailable}
	if err := db.Create(&table).Error; err != nil {
		t.Fatal(err)
	}

	pizza := models.MenuItem{
		Name:     "Pizza Margherita",
		Price:    16.50,
		Category: models.CategoryMain,
		Extras: []models.MenuExtra{
			{Name: "Pepperoni", Price: 3.00},
			{Name: "Extra Mozzarella", Price: 2.50},
		},
	}
	if err := db.Create(&pizza).Error; err != nil {
		t.Fatal(err)
	}

	return waiter.ID, table.ID, pizza.ID, pizza.Extras[0].ID
}

func setupCartRouter(db *gorm.DB, waiterID uint) *gin.Engine {
	router := gin.New()
	router.Use(authAs(waiterID, models.RoleWaiter))

	cartCtrl := controllers.NewCartController(db)
	router.GET("/cart", cartCtrl.GetCart)
	router.PATCH("/cart", cartCtrl.UpdateCart)
	router.DELETE("/cart", cartCtrl.ClearCart)
	router.POST("/cart/table", cartCtrl.AssignTable)
	router.POST("/cart/items", cartCtrl.AddItem)
	router.PATCH("/cart/items/:line_key", cartCtrl.UpdateLineQuantity)
	router.DELETE("/cart/items/:line_key", cartCtrl.RemoveLine)
	router.GET("/cart/totals", cartCtrl.GetTotals)
	return router
}

func cartLines(t *testing.T, w2 map[string]interface{}) []interface{} {
	t.Helper()
	cart := w2["data"].(map[string]interface{})["cart"].(map[string]interface{})
	lines, _ := cart["lines"].([]interface{})
	return lines
}

func TestAddItemMergesSameExtrasSet(t *testing.T) {
	db := setupTestDB(t, "cartmerge")
	waiterID, _, menuID, extraID := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	payload := map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     1,
		"extra_ids":    []uint{extraID},
	}
	w := performJSON(router, "POST", "/cart/items", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same item, same extras set: merges into one line with quantity 2.
	w = performJSON(router, "POST", "/cart/items", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	lines := cartLines(t, decodeBody(t, w))
	assert.Len(t, lines, 1)
	assert.Equal(t, float64(2), lines[0].(map[string]interface{})["quantity"])

	// Same item, no extras: a distinct second line.
	w = performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	lines = cartLines(t, decodeBody(t, w))
	assert.Len(t, lines, 2)
}

func TestAddItemDeduplicatesExtraIDs(t *testing.T) {
	db := setupTestDB(t, "cartdupextras")
	waiterID, _, menuID, extraID := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     1,
		"extra_ids":    []uint{extraID, extraID},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	lines := cartLines(t, decodeBody(t, w))
	assert.Len(t, lines, 1)
	extras := lines[0].(map[string]interface{})["extras"].([]interface{})
	assert.Len(t, extras, 1)

	// A later add with the single id merges into the same line.
	w = performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     1,
		"extra_ids":    []uint{extraID},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	lines = cartLines(t, decodeBody(t, w))
	assert.Len(t, lines, 1)
	assert.Equal(t, float64(2), lines[0].(map[string]interface{})["quantity"])
}

func TestAddItemRejectsForeignExtra(t *testing.T) {
	db := setupTestDB(t, "cartforeign")
	waiterID, _, menuID, _ := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"extra_ids":    []uint{9999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	db := setupTestDB(t, "cartqty")
	waiterID, _, menuID, _ := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	lines := cartLines(t, decodeBody(t, w))
	lineKey := lines[0].(map[string]interface{})["line_key"].(string)

	w = performJSON(router, "PATCH", "/cart/items/"+lineKey, map[string]interface{}{
		"quantity": 0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartLines(t, decodeBody(t, w)))

	// The line is gone, so touching it again is a 404.
	w = performJSON(router, "PATCH", "/cart/items/"+lineKey, map[string]interface{}{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveUnknownLineNotFound(t *testing.T) {
	db := setupTestDB(t, "cartremove")
	waiterID, _, _, _ := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	w := performJSON(router, "DELETE", "/cart/items/no-such-line", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartSubtotalTracksMutations(t *testing.T) {
	db := setupTestDB(t, "cartsubtotal")
	waiterID, _, menuID, extraID := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	// (16.50 + 3.00) * 2 = 39.00
	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     2,
		"extra_ids":    []uint{extraID},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 39.00, data["subtotal"])

	lines := cartLines(t, decodeBody(t, w))
	lineKey := lines[0].(map[string]interface{})["line_key"].(string)

	// Quantity 3 -> 58.50
	w = performJSON(router, "PATCH", "/cart/items/"+lineKey, map[string]interface{}{
		"quantity": 3,
	})
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 58.50, data["subtotal"])

	// Removed -> 0
	w = performJSON(router, "DELETE", "/cart/items/"+lineKey, nil)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 0.00, data["subtotal"])
}

func TestCartTotalsWithDiscountCode(t *testing.T) {
	db := setupTestDB(t, "carttotals")
	waiterID, _, menuID, extraID := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	tuesday := models.Discount{Name: "Tuesday Special", Code: "TUESDAY20",
		Kind: models.DiscountPercentage, Amount: 20, Active: true}
	assert.NoError(t, db.Create(&tuesday).Error)

	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": menuID,
		"quantity":     2,
		"extra_ids":    []uint{extraID},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Code match is case-insensitive.
	w = performJSON(router, "GET", "/cart/totals?code=tuesday20", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 39.00, data["subtotal"])
	assert.Equal(t, 7.80, data["discount_amount"])
	assert.Equal(t, 31.20, data["total"])
}

func TestCartTotalsClampFixedDiscount(t *testing.T) {
	db := setupTestDB(t, "cartclamp")
	waiterID, _, _, _ := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	cheap := models.MenuItem{Name: "Espresso", Price: 5.00, Category: models.CategoryDrink}
	assert.NoError(t, db.Create(&cheap).Error)
	tenOff := models.Discount{Name: "Ten Off", Code: "TENOFF",
		Kind: models.DiscountFixed, Amount: 10, Active: true}
	assert.NoError(t, db.Create(&tenOff).Error)

	w := performJSON(router, "POST", "/cart/items", map[string]interface{}{
		"menu_item_id": cheap.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// $10 off a $5 order never drives the total negative.
	w = performJSON(router, "GET", "/cart/totals?code=TENOFF", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 5.00, data["subtotal"])
	assert.Equal(t, 5.00, data["discount_amount"])
	assert.Equal(t, 0.00, data["total"])
}

func TestClearCartResetsEverything(t *testing.T) {
	db := setupTestDB(t, "cartclear")
	waiterID, tableID, menuID, _ := seedCartFixtures(t, db)
	router := setupCartRouter(db, waiterID)

	performJSON(router, "POST", "/cart/table", map[string]interface{}{"table_id": tableID})
	performJSON(router, "PATCH", "/cart", map[string]interface{}{"customer_name": "Dana"})
	performJSON(router, "POST", "/cart/items", map[string]interface{}{"menu_item_id": menuID})

	w := performJSON(router, "DELETE", "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "GET", "/cart", nil)
	body := decodeBody(t, w)
	cart := body["data"].(map[string]interface{})["cart"].(map[string]interface{})
	assert.Empty(t, cart["lines"])
	assert.Equal(t, "", cart["customer_name"])
	assert.Nil(t, cart["table_id"])
}
