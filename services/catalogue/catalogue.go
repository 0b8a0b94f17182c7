package catalogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rotharc/database/repository"
	productRepo "rotharc/database/repository/product"
	"rotharc/models"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

type CatalogueService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	// Import upserts a batch of products, e.g. from a seed file.
	Import(ctx context.Context, products []models.Product) (int, error)
}

type DefaultCatalogueService struct {
	Repo   productRepo.ProductRepository
	logger *zap.Logger
}

func NewCatalogueService(repo productRepo.ProductRepository, logger *zap.Logger) *DefaultCatalogueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogueService{Repo: repo, logger: logger}
}

// normalize checks the required fields and derives a missing ID from the name.
func normalize(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidProduct)
	}
	if p.ID == "" {
		p.ID = slug.Make(p.Name)
	}
	if !slug.IsSlug(p.ID) {
		return fmt.Errorf("%w: id %q must be lowercase words separated by dashes", ErrInvalidProduct, p.ID)
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Compatibility == nil {
		p.Compatibility = []string{}
	}
	return nil
}

func (s *DefaultCatalogueService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.Repo.List(ctx, filter)
}

func (s *DefaultCatalogueService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogueService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := normalize(p); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: product %q already exists", ErrInvalidProduct, p.ID)
		}
		return nil, err
	}
	s.logger.Info("Product created", zap.String("productID", p.ID))
	return p, nil
}

func (s *DefaultCatalogueService) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	p.ID = id
	if err := normalize(p); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogueService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("productID", id))
	return nil
}

func (s *DefaultCatalogueService) Import(ctx context.Context, products []models.Product) (int, error) {
	for i := range products {
		p := &products[i]
		if err := normalize(p); err != nil {
			return i, fmt.Errorf("product #%d: %w", i+1, err)
		}
		if err := s.Repo.Upsert(ctx, p); err != nil {
			return i, err
		}
	}
	s.logger.Info("Catalogue imported", zap.Int("count", len(products)))
	return len(products), nil
}
