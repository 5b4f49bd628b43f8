package product

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFunc  func(ctx context.Context, p *Product) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*Product, error)
	listFunc    func(ctx context.Context) ([]Product, error)
	updateFunc  func(ctx context.Context, p *Product) error
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, p *Product) error { return m.createFunc(ctx, p) }
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return m.getByIDFunc(ctx, id)
}
func (m *mockRepository) List(ctx context.Context) ([]Product, error) { return m.listFunc(ctx) }
func (m *mockRepository) Update(ctx context.Context, p *Product) error {
	return m.updateFunc(ctx, p)
}
func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, base64Image string) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, base64Image string) (string, error) {
	return m.uploadFunc(ctx, base64Image)
}

func TestService_Create(t *testing.T) {
	t.Run("uploads photo and stores returned URL", func(t *testing.T) {
		var persisted *Product
		repo := &mockRepository{
			createFunc: func(ctx context.Context, p *Product) error {
				persisted = p
				return nil
			},
		}
		uploader := &mockUploader{
			uploadFunc: func(ctx context.Context, base64Image string) (string, error) {
				assert.Equal(t, "data:image/png;base64,AAAA", base64Image)
				return "https://cdn.example.com/products/1.png", nil
			},
		}
		svc := NewService(repo, uploader)

		p, err := svc.Create(context.Background(), ProductInput{
			Name:     "Widget",
			Price:    9.99,
			Quantity: 5,
			Category: "tools",
			Photo:    "data:image/png;base64,AAAA",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/products/1.png", p.Photo)
		require.NotNil(t, persisted)
		assert.Equal(t, "Widget", persisted.Name)
	})

	t.Run("skips upload without photo", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, p *Product) error { return nil },
		}
		uploader := &mockUploader{
			uploadFunc: func(ctx context.Context, base64Image string) (string, error) {
				t.Fatal("uploader must not be called without a photo")
				return "", nil
			},
		}
		svc := NewService(repo, uploader)

		p, err := svc.Create(context.Background(), ProductInput{Name: "Widget", Price: 1, Quantity: 1, Category: "tools"})

		require.NoError(t, err)
		assert.Equal(t, "", p.Photo)
	})

	t.Run("upload failure aborts creation", func(t *testing.T) {
		createCalled := false
		repo := &mockRepository{
			createFunc: func(ctx context.Context, p *Product) error {
				createCalled = true
				return nil
			},
		}
		uploader := &mockUploader{
			uploadFunc: func(ctx context.Context, base64Image string) (string, error) {
				return "", errors.New("upstream unavailable")
			},
		}
		svc := NewService(repo, uploader)

		_, err := svc.Create(context.Background(), ProductInput{Name: "Widget", Price: 1, Quantity: 1, Category: "tools", Photo: "data:..."})

		assert.Error(t, err)
		assert.False(t, createCalled)
	})
}

func TestService_Update(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())

	t.Run("keeps existing photo when none provided", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*Product, error) {
				return &Product{ID: productID, Name: "Widget", Photo: "https://cdn.example.com/old.png"}, nil
			},
			updateFunc: func(ctx context.Context, p *Product) error { return nil },
		}
		uploader := &mockUploader{
			uploadFunc: func(ctx context.Context, base64Image string) (string, error) {
				t.Fatal("uploader must not be called without a photo")
				return "", nil
			},
		}
		svc := NewService(repo, uploader)

		p, err := svc.Update(context.Background(), productID, ProductInput{Name: "Widget v2", Price: 2, Quantity: 3, Category: "tools"})

		require.NoError(t, err)
		assert.Equal(t, "Widget v2", p.Name)
		assert.Equal(t, "https://cdn.example.com/old.png", p.Photo)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*Product, error) {
				return nil, ErrNotFound
			},
		}
		svc := NewService(repo, &mockUploader{})

		_, err := svc.Update(context.Background(), productID, ProductInput{Name: "Widget"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepository{
			deleteFunc: func(ctx context.Context, id uuid.UUID) error { return ErrNotFound },
		}
		svc := NewService(repo, &mockUploader{})

		err := svc.Delete(context.Background(), productID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo := &mockRepository{
			deleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
		}
		svc := NewService(repo, &mockUploader{})

		assert.NoError(t, svc.Delete(context.Background(), productID))
	})
}
