package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkpoint/restaurant-pos/models"
)

func TestMatchIngredientsByKeyword(t *testing.T) {
	supplies := []models.InventoryItem{
		{Name: "Mozzarella", Stock: 5, MaxStock: 40},
		{Name: "Flour", Stock: 40, MaxStock: 50},
		{Name: "Pizza Flour", Stock: 10, MaxStock: 50},
	}

	matched := MatchIngredients("Pizza Margherita", supplies)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Pizza Flour", matched[0].Name)
}

func TestMatchIngredientsSkipsShortTokens(t *testing.T) {
	supplies := []models.InventoryItem{
		{Name: "Al pastor mix"},
	}
	// "al" is too short to count as a keyword.
	assert.Empty(t, MatchIngredients("Al Forno", supplies))
}

func TestMatchIngredientsNoOverlap(t *testing.T) {
	supplies := []models.InventoryItem{
		{Name: "Tomatoes"},
	}
	assert.Empty(t, MatchIngredients("Tiramisu", supplies))
}
