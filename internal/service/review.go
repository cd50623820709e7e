package service

import (
	"context"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"
)

type reviewService struct {
	repos     repository.Repositories
	images    storage.ImageStore
	validator *validation.Validator
}

func NewReviewService(repos repository.Repositories, images storage.ImageStore, validator *validation.Validator) ReviewService {
	return &reviewService{repos: repos, images: images, validator: validator}
}

func (s *reviewService) UploadReview(ctx context.Context, apartmentID int32, reviewerID string, in ReviewInput) (*domain.Review, error) {
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}
	if _, err := s.repos.Apartments.GetByID(ctx, apartmentID); err != nil {
		return nil, translate(err, "apartment")
	}
	reviewer, err := s.repos.Users.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, translate(err, "user")
	}

	review := &domain.Review{
		ApartmentID: apartmentID,
		ReviewerID:  reviewer.ID,
		Content:     in.Content,
		Value:       in.Value,
	}
	if err := s.repos.Reviews.Create(ctx, review); err != nil {
		return nil, translate(err, "review")
	}
	review.Reviewer = withImage(s.images, reviewer)
	return review, nil
}

func (s *reviewService) ListApartmentReviews(ctx context.Context, apartmentID int32) ([]domain.Review, error) {
	if _, err := s.repos.Apartments.GetByID(ctx, apartmentID); err != nil {
		return nil, translate(err, "apartment")
	}
	reviews, err := s.repos.Reviews.ListByApartment(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		withImage(s.images, reviews[i].Reviewer)
	}
	return reviews, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor Actor, id int32) error {
	review, err := s.repos.Reviews.GetByID(ctx, id)
	if err != nil {
		return translate(err, "review")
	}
	if err := actor.authorize(fmt.Sprintf("delete review %d", id), review.ReviewerID); err != nil {
		return err
	}
	return translate(s.repos.Reviews.Delete(ctx, id), "review")
}
