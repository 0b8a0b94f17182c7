package testimonialRepo

import (
	"context"
	"fmt"
	"time"

	"rotharc/database/repository"
	"rotharc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTestimonialRepo struct {
	coll *mongo.Collection
}

func NewMongoTestimonialRepo(db *mongo.Database) TestimonialRepository {
	return &mongoTestimonialRepo{coll: db.Collection("testimonials")}
}

func (r *mongoTestimonialRepo) Create(ctx context.Context, t *models.Testimonial) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create testimonial: %w", repository.Translate(err))
	}
	return nil
}

func (r *mongoTestimonialRepo) List(ctx context.Context, status models.TestimonialStatus) ([]models.Testimonial, error) {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Testimonial, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}
	return out, nil
}

func (r *mongoTestimonialRepo) UpdateStatus(ctx context.Context, id string, status models.TestimonialStatus) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update testimonial %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("testimonial %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoTestimonialRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete testimonial %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("testimonial %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *mongoTestimonialRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete testimonials of user %s: %w", userID, err)
	}
	return result.DeletedCount, nil
}
