package service

import (
	"context"
	"fmt"
	"strings"

	"teahouse/internal/entity"
	"teahouse/internal/repository"
)

// AnonymousAuthor replaces a blank rating author.
const AnonymousAuthor = "Anonymous"

// RatingService owns the append-only customer service ratings.
type RatingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

func (s *RatingService) List(ctx context.Context) ([]entity.Rating, error) {
	ratings, err := s.ratingRepo.LoadAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading ratings")
		return nil, err
	}
	return ratings, nil
}

// Add appends one rating. Stars must be a whole number from 1 to 5;
// a blank author becomes AnonymousAuthor.
func (s *RatingService) Add(ctx context.Context, author, stars, comment string) (*entity.Rating, error) {
	n := ParseQuantity(stars)
	if n < 1 || n > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", entity.ErrValidation)
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = AnonymousAuthor
	}
	rating := entity.Rating{
		Author:  author,
		Stars:   n,
		Comment: strings.TrimSpace(comment),
	}
	if err := s.ratingRepo.Append(ctx, rating); err != nil {
		logger.Error().Err(err).Msg("Error saving rating")
		return nil, err
	}
	return &rating, nil
}
