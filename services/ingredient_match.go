package services

import (
	"strings"

	"github.com/forkpoint/restaurant-pos/models"
)

// MatchIngredients links a menu item to inventory items by keyword overlap:
// each lowercase token of the menu name is checked for substring containment
// in the supply name and vice versa. This is deliberately a display-only
// heuristic, not a bill-of-materials relationship; nothing is decremented
// based on it.
func MatchIngredients(menuName string, supplies []models.InventoryItem) []models.InventoryItem {
	tokens := strings.Fields(strings.ToLower(menuName))

	var matched []models.InventoryItem
	for _, supply := range supplies {
		supplyName := strings.ToLower(supply.Name)
		for _, token := range tokens {
			if len(token) < 3 {
				continue
			}
			if strings.Contains(supplyName, token) || strings.Contains(token, supplyName) {
				matched = append(matched, supply)
				break
			}
		}
	}
	return matched
}
