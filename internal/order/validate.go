package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/akovalyov/storefront-api/internal/product"
	"github.com/akovalyov/storefront-api/internal/user"
)

// CreateOrderRequest is the cart submitted by the client. The server never
// trusts client-side prices or totals.
type CreateOrderRequest struct {
	UserID          string                   `json:"userId"`
	Items           []CreateOrderItemRequest `json:"items"`
	ShippingAddress string                   `json:"shippingAddress"`
	PaymentMethod   string                   `json:"paymentMethod"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ProductGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// ValidatedItem pairs a requested quantity with the product as read during
// validation, so prices are snapshotted from the same read.
type ValidatedItem struct {
	Product  *product.Product
	Quantity int
}

type ValidatedOrder struct {
	User  *user.User
	Items []ValidatedItem
}

// validateCreate checks the whole candidate order before any mutation
// occurs. Checks run in a fixed order and short-circuit with a typed error;
// on success it returns the user and every referenced product so the
// assembler never re-reads them.
func validateCreate(ctx context.Context, users UserGetter, products ProductGetter, req *CreateOrderRequest) (*ValidatedOrder, error) {
	if req == nil {
		return nil, ErrMissingBody
	}

	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if len(req.Items) == 0 {
		missing = append(missing, "items")
	}
	if req.ShippingAddress == "" {
		missing = append(missing, "shippingAddress")
	}
	if req.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if !IsValidPaymentMethod(req.PaymentMethod) {
		return nil, &InvalidPaymentMethodError{Method: req.PaymentMethod, Valid: ValidPaymentMethods()}
	}

	userID, err := uuid.FromString(req.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("order: failed to fetch user %s: %w", userID, err)
	}

	items := make([]ValidatedItem, 0, len(req.Items))
	for i, item := range req.Items {
		// A zero quantity is indistinguishable from an absent one.
		if item.ProductID == "" || item.Quantity == 0 {
			return nil, &ItemMalformedError{Index: i}
		}

		productID, err := uuid.FromString(item.ProductID)
		if err != nil {
			return nil, &ItemProductNotFoundError{Index: i, ProductID: item.ProductID}
		}
		p, err := products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return nil, &ItemProductNotFoundError{Index: i, ProductID: item.ProductID}
			}
			return nil, fmt.Errorf("order: failed to fetch product %s: %w", productID, err)
		}

		if item.Quantity < 0 {
			return nil, &InvalidQuantityError{Index: i, ProductName: p.Name}
		}
		if p.Quantity < item.Quantity {
			return nil, &InsufficientStockError{
				Index:       i,
				ProductName: p.Name,
				Available:   p.Quantity,
				Requested:   item.Quantity,
			}
		}

		items = append(items, ValidatedItem{Product: p, Quantity: item.Quantity})
	}

	return &ValidatedOrder{User: u, Items: items}, nil
}
