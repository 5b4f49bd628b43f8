package user

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	createFunc     func(ctx context.Context, u *User) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*User, error)
	getByEmailFunc func(ctx context.Context, email string) (*User, error)
	updateFunc     func(ctx context.Context, u *User) error
}

func (m *mockRepository) Create(ctx context.Context, u *User) error { return m.createFunc(ctx, u) }
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return m.getByIDFunc(ctx, id)
}
func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.getByEmailFunc(ctx, email)
}
func (m *mockRepository) Update(ctx context.Context, u *User) error { return m.updateFunc(ctx, u) }

type mockUploader struct {
	uploadFunc func(ctx context.Context, base64Image string) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, base64Image string) (string, error) {
	return m.uploadFunc(ctx, base64Image)
}

func TestService_Register(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		var persisted *User
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u *User) error {
				persisted = u
				return nil
			},
		}
		svc := NewService(repo, &mockUploader{})

		u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret99")

		require.NoError(t, err)
		assert.Equal(t, RoleUser, u.Role)
		require.NotNil(t, persisted)
		assert.NotEqual(t, "s3cret99", persisted.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("s3cret99")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u *User) error { return ErrEmailExists },
		}
		svc := NewService(repo, &mockUploader{})

		_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret99")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		svc := NewService(&mockRepository{}, &mockUploader{})

		_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "")
		assert.Error(t, err)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret99"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, ErrNotFound
		},
	}
	svc := NewService(repo, &mockUploader{})

	t.Run("success", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "alice@example.com", "s3cret99")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "s3cret99")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	newRepo := func(stored *User) *mockRepository {
		return &mockRepository{
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*User, error) {
				if id == stored.ID {
					clone := *stored
					return &clone, nil
				}
				return nil, ErrNotFound
			},
			updateFunc: func(ctx context.Context, u *User) error {
				*stored = *u
				return nil
			},
		}
	}

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		stored := &User{ID: userID, Name: "Alice", Address: "1 Main St", PhoneNumber: "555"}
		svc := NewService(newRepo(stored), &mockUploader{})

		name := "Alice B"
		u, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Alice B", u.Name)
		assert.Equal(t, "1 Main St", u.Address)
		assert.Equal(t, "555", u.PhoneNumber)
	})

	t.Run("uploads profile picture", func(t *testing.T) {
		stored := &User{ID: userID, Name: "Alice"}
		uploader := &mockUploader{
			uploadFunc: func(ctx context.Context, base64Image string) (string, error) {
				return "https://cdn.example.com/profiles/alice.png", nil
			},
		}
		svc := NewService(newRepo(stored), uploader)

		u, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{ProfilePicture: "data:image/png;base64,AAAA"})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/profiles/alice.png", u.ProfilePicture)
	})

	t.Run("not found", func(t *testing.T) {
		stored := &User{ID: uuid.Must(uuid.NewV4())}
		svc := NewService(newRepo(stored), &mockUploader{})

		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
