package productRepo

import (
	"context"
	"fmt"
	"time"

	"rotharc/database/repository"
	"rotharc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoProductRepo struct {
	coll *mongo.Collection
}

// NewMongoProductRepo returns a ProductRepository over the "products" collection.
func NewMongoProductRepo(db *mongo.Database, logger *zap.Logger) ProductRepository {
	repo := &mongoProductRepo{coll: db.Collection("products")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create product indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoProductRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
		{Keys: bson.D{{Key: "is_new", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func buildFilter(f models.ProductFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.FeaturedOnly {
		filter["is_featured"] = true
	}
	if f.NewOnly {
		filter["is_new"] = true
	}
	return filter
}

func (r *mongoProductRepo) List(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Product
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, repository.Translate(err))
	}
	return &p, nil
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", repository.Translate(err))
	}
	return nil
}

func (r *mongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":              p.Name,
		"category":          p.Category,
		"sub_category":      p.SubCategory,
		"price":             p.Price,
		"description":       p.Description,
		"short_description": p.ShortDescription,
		"image_url":         p.ImageURL,
		"rating":            p.Rating,
		"review_count":      p.ReviewCount,
		"features":          p.Features,
		"compatibility":     p.Compatibility,
		"is_new":            p.IsNew,
		"is_featured":       p.IsFeatured,
		"updated_at":        p.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s: %w", p.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p, opts); err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
	}
	return nil
}

func (r *mongoProductRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
