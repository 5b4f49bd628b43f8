package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, trackingNumber *string) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	orders   Repository
	users    UserGetter
	products ProductGetter
}

func NewService(orders Repository, users UserGetter, products ProductGetter) Service {
	return &service{orders: orders, users: users, products: products}
}

// priceItems snapshots each validated item's price and computes the order
// total. Pure function of the validated list; prices come from the products
// read during validation and are never recalculated afterwards.
func priceItems(items []ValidatedItem) ([]OrderItem, float64) {
	priced := make([]OrderItem, 0, len(items))
	totalAmount := 0.0
	for _, item := range items {
		priced = append(priced, OrderItem{
			Product: ProductSummary{
				ID:    item.Product.ID,
				Name:  item.Product.Name,
				Price: item.Product.Price,
				Photo: item.Product.Photo,
			},
			Quantity:     item.Quantity,
			PriceAtOrder: item.Product.Price,
		})
		totalAmount += item.Product.Price * float64(item.Quantity)
	}
	return priced, totalAmount
}

// Create validates the whole cart, snapshots prices, and hands the order to
// the repository, which decrements stock and persists the order as one
// atomic unit. Nothing is mutated when validation fails.
func (s *service) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	validated, err := validateCreate(ctx, s.users, s.products, req)
	if err != nil {
		return nil, err
	}

	items, totalAmount := priceItems(validated.Items)

	o := &Order{
		User: UserSummary{
			ID:    validated.User.ID,
			Name:  validated.User.Name,
			Email: validated.User.Email,
		},
		Items:           items,
		TotalAmount:     totalAmount,
		ShippingAddress: req.ShippingAddress,
		Status:          StatusPending,
		PaymentMethod:   PaymentMethod(req.PaymentMethod),
		PaymentStatus:   PaymentStatusPending,
		TrackingNumber:  "",
	}

	if err := s.orders.Create(ctx, o); err != nil {
		var insufficient *InsufficientStockError
		var notFound *ItemProductNotFoundError
		if errors.As(err, &insufficient) || errors.As(err, &notFound) {
			log.Warn().Err(err).Stringer("user_id", o.User.ID).Msg("service: order rejected at commit time")
			return nil, err
		}
		log.Error().Err(err).Stringer("user_id", o.User.ID).Msg("service: failed to persist order")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Stringer("order_id", o.ID).
		Stringer("user_id", o.User.ID).
		Float64("total_amount", o.TotalAmount).
		Int("item_count", len(o.Items)).
		Msg("service: order created")
	return o, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}
	return o, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("service: failed to list user orders")
		return nil, fmt.Errorf("service: failed to list user orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus accepts any of the five status literals as the target; the
// lifecycle deliberately has no adjacency rules beyond that.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, trackingNumber *string) (*Order, error) {
	if !IsValidStatus(status) {
		return nil, &InvalidStatusError{Status: status, Valid: ValidStatuses()}
	}

	o, err := s.orders.UpdateStatus(ctx, id, Status(status), trackingNumber)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Str("new_status", status).Msg("service: failed to update order status")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Stringer("order_id", id).Str("new_status", status).Msg("service: order status updated")
	return o, nil
}

// Delete removes the order record. Stock is not restored; restocking is
// left to whatever process retires cancelled orders.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to delete order")
		return fmt.Errorf("service: failed to delete order: %w", err)
	}
	log.Info().Stringer("order_id", id).Msg("service: order deleted")
	return nil
}
