package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/product"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, trackingNumber *string) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// Create persists the order and decrements stock in one transaction. Each
// decrement is conditional on sufficient remaining stock, so a concurrent
// order that raced past validation fails here instead of overselling; any
// failure rolls back every decrement already applied in this transaction.
func (r *postgresRepository) Create(ctx context.Context, o *Order) (err error) {
	if o.ID == uuid.Nil {
		id, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order ID: %w", genErr)
		}
		o.ID = id
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Stringer("order_id", o.ID).Msg("repository: failed to rollback order transaction")
			}
		}
	}()

	for i, item := range o.Items {
		ok, decErr := product.DecrementStock(ctx, tx, item.Product.ID, item.Quantity)
		if decErr != nil {
			err = decErr
			return err
		}
		if !ok {
			// Sufficiency changed between validation and commit; re-read
			// the live figure for the error payload.
			var available int
			if scanErr := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, item.Product.ID).Scan(&available); scanErr != nil {
				if errors.Is(scanErr, pgx.ErrNoRows) {
					err = &ItemProductNotFoundError{Index: i, ProductID: item.Product.ID.String()}
					return err
				}
				err = fmt.Errorf("repository: failed to read stock for product %s: %w", item.Product.ID, scanErr)
				return err
			}
			err = &InsufficientStockError{
				Index:       i,
				ProductName: item.Product.Name,
				Available:   available,
				Requested:   item.Quantity,
			}
			return err
		}
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	queryOrder := `
		INSERT INTO orders (id, user_id, total_amount, shipping_address, status, payment_method, payment_status, tracking_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, queryOrder,
		o.ID, o.User.ID, o.TotalAmount, o.ShippingAddress,
		string(o.Status), string(o.PaymentMethod), string(o.PaymentStatus), o.TrackingNumber,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		err = fmt.Errorf("repository: failed to insert order: %w", err)
		return err
	}

	queryItem := `
		INSERT INTO order_items (order_id, position, product_id, quantity, price_at_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, item := range o.Items {
		_, err = tx.Exec(ctx, queryItem, o.ID, i, item.Product.ID, item.Quantity, item.PriceAtOrder)
		if err != nil {
			err = fmt.Errorf("repository: failed to insert order item for order %s: %w", o.ID, err)
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("repository: failed to commit order transaction: %w", err)
		return err
	}
	return nil
}

const orderColumns = `o.id, o.total_amount, o.shipping_address, o.status, o.payment_method, o.payment_status, o.tracking_number, o.created_at, o.updated_at`

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	queryOrder := `
		SELECT ` + orderColumns + `, u.id, u.name, u.email, u.phone_number, u.address
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`

	var o Order
	var status, paymentMethod, paymentStatus string
	err := r.db.QueryRow(ctx, queryOrder, id).Scan(
		&o.ID, &o.TotalAmount, &o.ShippingAddress, &status, &paymentMethod, &paymentStatus, &o.TrackingNumber,
		&o.CreatedAt, &o.UpdatedAt,
		&o.User.ID, &o.User.Name, &o.User.Email, &o.User.PhoneNumber, &o.User.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %s: %w", id, err)
	}
	o.Status = Status(status)
	o.PaymentMethod = PaymentMethod(paymentMethod)
	o.PaymentStatus = PaymentStatus(paymentStatus)

	queryItems := `
		SELECT oi.product_id, oi.quantity, oi.price_at_order,
		       COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.photo, ''), COALESCE(p.description, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.position
	`
	rows, err := r.db.Query(ctx, queryItems, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %s: %w", id, err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.Product.ID, &item.Quantity, &item.PriceAtOrder,
			&item.Product.Name, &item.Product.Price, &item.Product.Photo, &item.Product.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %s: %w", id, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %s: %w", id, err)
	}

	o.Items = items
	return &o, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Order, error) {
	query := `
		SELECT ` + orderColumns + `, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`
	return r.listOrders(ctx, query)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	query := `
		SELECT ` + orderColumns + `, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`
	return r.listOrders(ctx, query, userID)
}

func (r *postgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	orderRows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer orderRows.Close()

	ordersMap := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for orderRows.Next() {
		var o Order
		var status, paymentMethod, paymentStatus string
		err := orderRows.Scan(
			&o.ID, &o.TotalAmount, &o.ShippingAddress, &status, &paymentMethod, &paymentStatus, &o.TrackingNumber,
			&o.CreatedAt, &o.UpdatedAt,
			&o.User.ID, &o.User.Name, &o.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		o.Status = Status(status)
		o.PaymentMethod = PaymentMethod(paymentMethod)
		o.PaymentStatus = PaymentStatus(paymentStatus)
		o.Items = make([]OrderItem, 0)
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	queryItems := `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.price_at_order,
		       COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.photo, ''), COALESCE(p.category, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position
	`
	itemRows, err := r.db.Query(ctx, queryItems, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uuid.UUID
		var item OrderItem
		err := itemRows.Scan(
			&orderID, &item.Product.ID, &item.Quantity, &item.PriceAtOrder,
			&item.Product.Name, &item.Product.Price, &item.Product.Photo, &item.Product.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		if o, ok := ordersMap[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	orders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *ordersMap[id])
	}
	return orders, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, trackingNumber *string) (*Order, error) {
	query := `
		UPDATE orders
		SET status = $1, tracking_number = COALESCE($2, tracking_number), updated_at = $3
		WHERE id = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, string(status), trackingNumber, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update status for order %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// order_items rows go with the order via ON DELETE CASCADE; stock is
	// deliberately not restored.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete order %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
