package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingBody   = errors.New("request body is missing")
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
)

// MissingFieldsError names every absent top-level field, not just the first.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ItemMalformedError marks an item whose productId or quantity is absent.
type ItemMalformedError struct {
	Index int
}

func (e *ItemMalformedError) Error() string {
	return fmt.Sprintf("item %d is missing productId or quantity", e.Index)
}

// ItemProductNotFoundError marks an item referencing an unknown product.
type ItemProductNotFoundError struct {
	Index     int
	ProductID string
}

func (e *ItemProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s (item %d)", e.ProductID, e.Index)
}

// InvalidQuantityError marks an item with a non-positive quantity.
type InvalidQuantityError struct {
	Index       int
	ProductName string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for product %s (item %d)", e.ProductName, e.Index)
}

// InsufficientStockError carries available/requested figures so the client
// can render a precise message.
type InsufficientStockError struct {
	Index       int
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d (item %d)",
		e.ProductName, e.Available, e.Requested, e.Index)
}

// InvalidPaymentMethodError rejects payment method values outside the enum.
type InvalidPaymentMethodError struct {
	Method string
	Valid  []string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method %q, valid values: %s", e.Method, strings.Join(e.Valid, ", "))
}

// InvalidStatusError rejects status values outside the five literals.
type InvalidStatusError struct {
	Status string
	Valid  []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q, valid values: %s", e.Status, strings.Join(e.Valid, ", "))
}
