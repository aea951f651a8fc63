package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forkpoint/restaurant-pos/models"
)

// LineKey builds the compound key identifying a (menu item, extras-set)
// pairing. Lines with the same key merge by summing quantity; a different
// extras selection always yields a distinct line.
func LineKey(menuItemID uint, extraIDs []uint) string {
	ids := make([]uint, len(extraIDs))
	copy(ids, extraIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "%d", menuItemID)
	for _, id := range ids {
		fmt.Fprintf(&b, ":%d", id)
	}
	return b.String()
}

// LineTotal computes (unit price + sum of extra prices) * quantity.
func LineTotal(line models.CartLine) float64 {
	unit := line.UnitPrice
	for _, extra := range line.Extras {
		unit += extra.Price
	}
	return Round2(unit * float64(line.Quantity))
}

// Subtotal sums the line totals of a cart.
func Subtotal(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += LineTotal(line)
	}
	return Round2(total)
}

// DiscountAmount computes how much a discount takes off a subtotal.
// The result is clamped to the subtotal so a total can never go negative.
func DiscountAmount(subtotal float64, discount *models.Discount) float64 {
	if discount == nil {
		return 0
	}

	var amount float64
	switch discount.Kind {
	case models.DiscountPercentage:
		amount = subtotal * discount.Amount / 100
	case models.DiscountFixed:
		amount = discount.Amount
	}

	amount = Round2(amount)
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// ParseDiscountValue parses a back-office discount value string into a
// typed kind and amount, once, at creation time. A value containing '%'
// is a percentage ("20%" -> 20); anything else is an absolute currency
// amount with non-numeric characters stripped ("$10.00" -> 10.00).
func ParseDiscountValue(value string) (kind string, amount float64, err error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", 0, fmt.Errorf("discount value is empty")
	}

	if strings.Contains(raw, "-") {
		return "", 0, fmt.Errorf("discount value must be positive, got %q", value)
	}

	if strings.Contains(raw, "%") {
		kind = models.DiscountPercentage
	} else {
		kind = models.DiscountFixed
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	amount, err = strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return "", 0, fmt.Errorf("unparseable discount value %q", value)
	}
	if amount <= 0 {
		return "", 0, fmt.Errorf("discount value must be positive, got %q", value)
	}
	if kind == models.DiscountPercentage && amount > 100 {
		return "", 0, fmt.Errorf("percentage discount cannot exceed 100%%, got %q", value)
	}
	return kind, Round2(amount), nil
}

// NewOrderNumber generates a time-based order identifier.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), uuid.New().String()[:8])
}

// Round2 rounds to two decimal places (cents).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
