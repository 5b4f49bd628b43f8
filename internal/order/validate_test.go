package order

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalyov/storefront-api/internal/product"
	"github.com/akovalyov/storefront-api/internal/user"
)

type mockUserGetter struct {
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *mockUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

type mockProductGetter struct {
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

func (m *mockProductGetter) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return m.getByIDFunc(ctx, id)
}

var (
	testUserID    = uuid.Must(uuid.FromString("123e4567-e89b-12d3-a456-426614174000"))
	testProductID = uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))
)

func knownUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if id == testUserID {
		return &user.User{ID: testUserID, Name: "Alice", Email: "alice@example.com"}, nil
	}
	return nil, user.ErrNotFound
}

func stockedProduct(stock int, price float64) func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
		if id == testProductID {
			return &product.Product{ID: testProductID, Name: "Widget", Price: price, Quantity: stock}, nil
		}
		return nil, product.ErrNotFound
	}
}

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		UserID:          testUserID.String(),
		Items:           []CreateOrderItemRequest{{ProductID: testProductID.String(), Quantity: 3}},
		ShippingAddress: "1 Main St",
		PaymentMethod:   "credit_card",
	}
}

func TestValidateCreate_MissingBody(t *testing.T) {
	_, err := validateCreate(context.Background(), &mockUserGetter{}, &mockProductGetter{}, nil)
	assert.ErrorIs(t, err, ErrMissingBody)
}

func TestValidateCreate_MissingFields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(req *CreateOrderRequest)
		wantFields []string
	}{
		{
			name:       "all fields missing",
			mutate:     func(req *CreateOrderRequest) { *req = CreateOrderRequest{} },
			wantFields: []string{"userId", "items", "shippingAddress", "paymentMethod"},
		},
		{
			name:       "missing shipping address",
			mutate:     func(req *CreateOrderRequest) { req.ShippingAddress = "" },
			wantFields: []string{"shippingAddress"},
		},
		{
			name:       "empty items",
			mutate:     func(req *CreateOrderRequest) { req.Items = nil },
			wantFields: []string{"items"},
		},
		{
			name: "missing user and payment method",
			mutate: func(req *CreateOrderRequest) {
				req.UserID = ""
				req.PaymentMethod = ""
			},
			wantFields: []string{"userId", "paymentMethod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := validateCreate(context.Background(), &mockUserGetter{}, &mockProductGetter{}, req)

			var missing *MissingFieldsError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantFields, missing.Fields)
		})
	}
}

func TestValidateCreate_InvalidPaymentMethod(t *testing.T) {
	req := validRequest()
	req.PaymentMethod = "bitcoin"

	_, err := validateCreate(context.Background(), &mockUserGetter{}, &mockProductGetter{}, req)

	var invalid *InvalidPaymentMethodError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bitcoin", invalid.Method)
	assert.Equal(t, ValidPaymentMethods(), invalid.Valid)
}

func TestValidateCreate_UserNotFound(t *testing.T) {
	users := &mockUserGetter{getByIDFunc: knownUser}

	tests := []struct {
		name   string
		userID string
	}{
		{name: "unknown user", userID: "999e8400-e29b-41d4-a716-446655440000"},
		{name: "malformed user id", userID: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.UserID = tt.userID

			_, err := validateCreate(context.Background(), users, &mockProductGetter{}, req)
			assert.ErrorIs(t, err, ErrUserNotFound)
		})
	}
}

func TestValidateCreate_ItemChecks(t *testing.T) {
	users := &mockUserGetter{getByIDFunc: knownUser}
	products := &mockProductGetter{getByIDFunc: stockedProduct(5, 10)}

	t.Run("item missing product id", func(t *testing.T) {
		req := validRequest()
		req.Items = []CreateOrderItemRequest{{Quantity: 1}}

		_, err := validateCreate(context.Background(), users, products, req)

		var malformed *ItemMalformedError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, 0, malformed.Index)
	})

	t.Run("item missing quantity", func(t *testing.T) {
		req := validRequest()
		req.Items = []CreateOrderItemRequest{
			{ProductID: testProductID.String(), Quantity: 1},
			{ProductID: testProductID.String()},
		}

		_, err := validateCreate(context.Background(), users, products, req)

		var malformed *ItemMalformedError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, 1, malformed.Index)
	})

	t.Run("product not found reports index and id", func(t *testing.T) {
		unknownID := "999e8400-e29b-41d4-a716-446655440000"
		req := validRequest()
		req.Items = []CreateOrderItemRequest{
			{ProductID: testProductID.String(), Quantity: 1},
			{ProductID: unknownID, Quantity: 2},
		}

		_, err := validateCreate(context.Background(), users, products, req)

		var notFound *ItemProductNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 1, notFound.Index)
		assert.Equal(t, unknownID, notFound.ProductID)
	})

	t.Run("negative quantity names the product", func(t *testing.T) {
		req := validRequest()
		req.Items = []CreateOrderItemRequest{{ProductID: testProductID.String(), Quantity: -2}}

		_, err := validateCreate(context.Background(), users, products, req)

		var invalid *InvalidQuantityError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 0, invalid.Index)
		assert.Equal(t, "Widget", invalid.ProductName)
	})

	t.Run("insufficient stock carries figures", func(t *testing.T) {
		req := validRequest()
		req.Items = []CreateOrderItemRequest{{ProductID: testProductID.String(), Quantity: 6}}

		_, err := validateCreate(context.Background(), users, products, req)

		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 0, insufficient.Index)
		assert.Equal(t, "Widget", insufficient.ProductName)
		assert.Equal(t, 5, insufficient.Available)
		assert.Equal(t, 6, insufficient.Requested)
	})
}

func TestValidateCreate_Success(t *testing.T) {
	users := &mockUserGetter{getByIDFunc: knownUser}
	products := &mockProductGetter{getByIDFunc: stockedProduct(5, 10)}

	validated, err := validateCreate(context.Background(), users, products, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Alice", validated.User.Name)
	require.Len(t, validated.Items, 1)
	assert.Equal(t, testProductID, validated.Items[0].Product.ID)
	assert.Equal(t, 3, validated.Items[0].Quantity)
}
