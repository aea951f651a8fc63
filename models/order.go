package models

import "time"

// Order statuses
const (
	OrderNew       = "new"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderPaid      = "paid"
)

// Payment methods
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Invoice options
const (
	InvoiceNone  = "none"
	InvoicePrint = "print"
	InvoiceEmail = "email"
)

// Order is an immutable-once-submitted record snapshot of a cart.
// Only Status and PrepTimeMinutes change after creation, via the
// transition table below.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_number"`
	TableID         uint        `gorm:"not null;index" json:"table_id"`
	TableName       string      `gorm:"type:varchar(50);not null" json:"table_name"`
	CustomerName    string      `gorm:"type:varchar(255)" json:"customer_name"`
	WaiterID        uint        `gorm:"not null;index" json:"waiter_id"`
	WaiterName      string      `gorm:"type:varchar(255);not null" json:"waiter_name"`
	PaymentMethod   string      `gorm:"type:varchar(10);not null" json:"payment_method"`
	InvoiceOption   string      `gorm:"type:varchar(10);not null;default:'none'" json:"invoice_option"`
	Status          string      `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Subtotal        float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DiscountCode    *string     `gorm:"type:varchar(50)" json:"discount_code,omitempty"`
	DiscountAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount_amount"`
	Total           float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	PrepTimeMinutes *int        `json:"prep_time_minutes,omitempty"`
	Lines           []OrderLine `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"lines"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

// orderTransitions is the allowed status state machine:
// new -> preparing -> ready -> delivered -> paid. Paid is terminal,
// no backward transitions.
var orderTransitions = map[string]string{
	OrderNew:       OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderDelivered,
	OrderDelivered: OrderPaid,
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	next, ok := orderTransitions[from]
	return ok && next == to
}

// ValidOrderStatus reports whether status is a known order status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderNew, OrderPreparing, OrderReady, OrderDelivered, OrderPaid:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether method is a known payment method.
func ValidPaymentMethod(method string) bool {
	return method == PaymentCash || method == PaymentCard
}

// ValidInvoiceOption reports whether option is a known invoice option.
func ValidInvoiceOption(option string) bool {
	switch option {
	case InvoiceNone, InvoicePrint, InvoiceEmail:
		return true
	}
	return false
}
