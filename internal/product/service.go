package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/upload"
)

// ProductInput is the administrative create/update payload. Photo holds a
// base64 image routed through the uploader; an empty Photo keeps the
// existing URL on update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	Photo       string
}

type Service interface {
	Create(ctx context.Context, in ProductInput) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	uploader upload.Uploader
}

func NewService(repo Repository, uploader upload.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) Create(ctx context.Context, in ProductInput) (*Product, error) {
	photoURL := ""
	if in.Photo != "" {
		url, err := s.uploader.Upload(ctx, in.Photo)
		if err != nil {
			log.Error().Err(err).Msg("service: failed to upload product photo")
			return nil, fmt.Errorf("service: failed to upload product photo: %w", err)
		}
		photoURL = url
	}

	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
		Photo:       photoURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", p.ID).Str("name", p.Name).Msg("service: product created")
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch product by id: %w", err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch product for update: %w", err)
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Category = in.Category
	if in.Photo != "" {
		url, err := s.uploader.Upload(ctx, in.Photo)
		if err != nil {
			log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to upload product photo")
			return nil, fmt.Errorf("service: failed to upload product photo: %w", err)
		}
		p.Photo = url
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to update product")
		return nil, fmt.Errorf("service: failed to update product: %w", err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}
	log.Info().Stringer("product_id", id).Msg("service: product deleted")
	return nil
}
