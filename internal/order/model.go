package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// ValidStatuses lists the accepted status literals in lifecycle order.
func ValidStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusProcessing),
		string(StatusShipped),
		string(StatusDelivered),
		string(StatusCancelled),
	}
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentOther          PaymentMethod = "other"
)

func ValidPaymentMethods() []string {
	return []string{
		string(PaymentCreditCard),
		string(PaymentPayPal),
		string(PaymentCashOnDelivery),
		string(PaymentOther),
	}
}

func IsValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery, PaymentOther:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// UserSummary is the denormalized user slice embedded in order responses.
// PhoneNumber and Address are populated only on single-order reads.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Address     string    `json:"address,omitempty"`
}

// ProductSummary is the denormalized product slice embedded in order items.
// Description and Category are populated only where the endpoint asks for
// them.
type ProductSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Photo       string    `json:"photo"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
}

// OrderItem is a line of an order. PriceAtOrder is snapshotted from the
// product at creation time and never recalculated afterwards.
type OrderItem struct {
	Product      ProductSummary `json:"product"`
	Quantity     int            `json:"quantity"`
	PriceAtOrder float64        `json:"priceAtOrder"`
}

type Order struct {
	ID              uuid.UUID     `json:"id"`
	User            UserSummary   `json:"user"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress"`
	Status          Status        `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TrackingNumber  string        `json:"trackingNumber"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
