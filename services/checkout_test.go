package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forkpoint/restaurant-pos/models"
)

func TestLineKey(t *testing.T) {
	// Extra order must not matter.
	assert.Equal(t, LineKey(7, []uint{3, 1}), LineKey(7, []uint{1, 3}))
	// Different extras set is a different key.
	assert.NotEqual(t, LineKey(7, []uint{1}), LineKey(7, []uint{1, 3}))
	// Same extras on a different menu item is a different key.
	assert.NotEqual(t, LineKey(7, []uint{1}), LineKey(8, []uint{1}))
	// No extras.
	assert.Equal(t, "7", LineKey(7, nil))
}

func TestLineTotalWithExtras(t *testing.T) {
	line := models.CartLine{
		UnitPrice: 16.50,
		Quantity:  2,
		Extras: []models.CartLineExtra{
			{Name: "Pepperoni", Price: 3.00},
		},
	}
	// (16.50 + 3.00) * 2
	assert.Equal(t, 39.00, LineTotal(line))
}

func TestSubtotal(t *testing.T) {
	lines := []models.CartLine{
		{UnitPrice: 16.50, Quantity: 2, Extras: []models.CartLineExtra{{Price: 3.00}}},
		{UnitPrice: 7.00, Quantity: 1},
	}
	assert.Equal(t, 46.00, Subtotal(lines))

	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestParseDiscountValuePercentage(t *testing.T) {
	kind, amount, err := ParseDiscountValue("20%")
	assert.NoError(t, err)
	assert.Equal(t, models.DiscountPercentage, kind)
	assert.Equal(t, 20.0, amount)
}

func TestParseDiscountValueFixed(t *testing.T) {
	kind, amount, err := ParseDiscountValue("$10.00")
	assert.NoError(t, err)
	assert.Equal(t, models.DiscountFixed, kind)
	assert.Equal(t, 10.0, amount)
}

func TestParseDiscountValueRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "free food", "%", "$", "-5%", "$-5", "150%"} {
		_, _, err := ParseDiscountValue(value)
		assert.Error(t, err, "value %q should not parse", value)
	}
}

func TestDiscountAmountPercentage(t *testing.T) {
	discount := &models.Discount{Kind: models.DiscountPercentage, Amount: 20}
	assert.Equal(t, 20.0, DiscountAmount(100.00, discount))
}

func TestDiscountAmountClampedToSubtotal(t *testing.T) {
	discount := &models.Discount{Kind: models.DiscountFixed, Amount: 10}
	// A $10 discount on a $5 order takes off at most $5.
	assert.Equal(t, 5.0, DiscountAmount(5.00, discount))
}

func TestDiscountAmountNilDiscount(t *testing.T) {
	assert.Equal(t, 0.0, DiscountAmount(100.00, nil))
}

func TestCheckoutScenarioPizzaMargherita(t *testing.T) {
	// Pizza Margherita $16.50 + Pepperoni $3.00, quantity 2.
	lines := []models.CartLine{
		{
			Name:      "Pizza Margherita",
			UnitPrice: 16.50,
			Quantity:  2,
			Extras:    []models.CartLineExtra{{Name: "Pepperoni", Price: 3.00}},
		},
	}
	subtotal := Subtotal(lines)
	assert.Equal(t, 39.00, subtotal)

	tuesday := &models.Discount{Code: "TUESDAY20", Kind: models.DiscountPercentage, Amount: 20, Active: true}
	amount := DiscountAmount(subtotal, tuesday)
	assert.Equal(t, 7.80, amount)
	assert.Equal(t, 31.20, Round2(subtotal-amount))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)
	number := NewOrderNumber(now)
	assert.Contains(t, number, "ORD-20240603183000-")
	assert.NotEqual(t, number, NewOrderNumber(now))
}
