package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/online-catalog/backend/internal/catalog"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/storage"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
)

// ProductService handles business logic for products: catalog listing with
// option joins and the admin CRUD flow including image objects.
type ProductService struct {
	products repository.ProductRepository
	options  repository.OptionRepository
	images   storage.ImageStore
	log      *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, options repository.OptionRepository, images storage.ImageStore, log *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		options:  options,
		images:   images,
		log:      log,
	}
}

// ListProducts returns all products joined with their option groups.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.ProductWithOptions, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	joined := make([]models.ProductWithOptions, 0, len(products))
	for _, p := range products {
		joined = append(joined, models.ProductWithOptions{
			Product: p,
			Options: s.resolveOptions(ctx, p),
		})
	}
	return joined, nil
}

// ListVisible returns the products matching the storefront filter spec,
// joined with their option groups and ordered by the spec's sort key.
func (s *ProductService) ListVisible(ctx context.Context, spec catalog.Spec) ([]models.ProductWithOptions, error) {
	joined, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	bare := make([]models.Product, len(joined))
	byID := make(map[string]models.ProductWithOptions, len(joined))
	for i, p := range joined {
		bare[i] = p.Product
		byID[p.ID] = p
	}

	visible := catalog.Visible(bare, spec)
	out := make([]models.ProductWithOptions, 0, len(visible))
	for _, p := range visible {
		out = append(out, byID[p.ID])
	}
	return out, nil
}

// GetProduct returns a product by ID, joined with its option groups.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.ProductWithOptions, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ProductWithOptions{
		Product: *p,
		Options: s.resolveOptions(ctx, *p),
	}, nil
}

// resolveOptions joins a product's option references to the full groups.
// References that no longer resolve are skipped with a warning so the
// product still renders, just with a smaller option set.
func (s *ProductService) resolveOptions(ctx context.Context, p models.Product) []models.Option {
	opts := make([]models.Option, 0, len(p.OptionIDs))
	for _, id := range p.OptionIDs {
		opt, err := s.options.GetByID(ctx, id)
		if err != nil {
			s.log.Warn("skipping unresolved option reference",
				"productId", p.ID,
				"optionId", id,
				"error", err,
			)
			continue
		}
		opts = append(opts, *opt)
	}
	return opts
}

// CreateProduct validates the input, stores the image object when one was
// uploaded, and inserts the product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput, image io.Reader, imageName string) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.images.Save(ctx, image, imageName)
		if err != nil {
			return nil, err
		}
		in.Image = url
	}

	return s.products.Create(ctx, in)
}

// UpdateProduct overwrites a product's fields. When new image data arrives
// the previous object is deleted first; a failed delete is logged, not
// fatal. Without new data the existing image URL is kept unless the input
// set one explicitly.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput, image io.Reader, imageName string) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if err := s.images.Delete(ctx, current.Image); err != nil {
			s.log.Warn("failed to delete previous image object", "productId", id, "error", err)
		}
		url, err := s.images.Save(ctx, image, imageName)
		if err != nil {
			return nil, err
		}
		in.Image = url
	} else if in.Image == "" {
		in.Image = current.Image
	}

	return s.products.Update(ctx, id, in)
}

// DeleteProduct removes the product and its image object. A failed image
// delete is logged, not fatal.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.Delete(ctx, current.Image); err != nil {
		s.log.Warn("failed to delete image object", "productId", id, "error", err)
	}

	return s.products.Delete(ctx, id)
}

func validateProductInput(in models.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(in.Price) == "" {
		return ErrInvalidProduct
	}
	return nil
}
