package repository

import (
	"context"

	"teahouse/internal/entity"
	"teahouse/internal/storage"
)

// RatingRepository is an append-only collection of service ratings.
type RatingRepository struct {
	store *storage.Store
}

func NewRatingRepository(store *storage.Store) *RatingRepository {
	return &RatingRepository{store: store}
}

func (r *RatingRepository) LoadAll(ctx context.Context) ([]entity.Rating, error) {
	var ratings []entity.Rating
	if err := r.store.Load(storage.RatingsFile, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) Append(ctx context.Context, rating entity.Rating) error {
	ratings, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	ratings = append(ratings, rating)
	return r.store.Save(storage.RatingsFile, ratings)
}
