package productRepo

import (
	"context"

	"rotharc/models"
)

// ProductRepository is the read/write access to the catalogue.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// Upsert inserts or replaces a product by ID; used by the seed command.
	Upsert(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
