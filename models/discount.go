package models

import "time"

// Discount kinds
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Discount is a coded promotional adjustment. The value submitted by the
// back office ("20%" or "$10.00") is parsed once at creation time into
// Kind + Amount; checkout never re-parses strings.
type Discount struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Code       string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Kind       string     `gorm:"type:varchar(20);not null" json:"kind"`
	Amount     float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Active     bool       `gorm:"not null" json:"active"`
	UsageCount int        `gorm:"not null;default:0" json:"usage_count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

// Expired reports whether the discount has an expiry in the past.
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}
