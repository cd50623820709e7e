package service

import (
	"context"
	"errors"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/storage"
)

type wishListService struct {
	repos  repository.Repositories
	images storage.ImageStore
}

func NewWishListService(repos repository.Repositories, images storage.ImageStore) WishListService {
	return &wishListService{repos: repos, images: images}
}

func (s *wishListService) SaveListing(ctx context.Context, userID string, apartmentID int32) error {
	list, err := s.repos.WishLists.GetByUser(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}
	if _, err := s.repos.Apartments.GetByID(ctx, apartmentID); err != nil {
		return translate(err, "apartment")
	}
	err = s.repos.WishLists.AddEntry(ctx, list.ID, apartmentID)
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("apartment is already saved")
	}
	return err
}

func (s *wishListService) RemoveSavedListing(ctx context.Context, userID string, apartmentID int32) error {
	list, err := s.repos.WishLists.GetByUser(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}
	return translate(s.repos.WishLists.RemoveEntry(ctx, list.ID, apartmentID), "saved listing")
}

func (s *wishListService) ListSavedListings(ctx context.Context, userID string) ([]domain.Apartment, error) {
	if _, err := s.repos.WishLists.GetByUser(ctx, userID); err != nil {
		return nil, translate(err, "user")
	}
	apartments, err := s.repos.Apartments.ListSaved(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range apartments {
		img, err := s.repos.Images.FirstByApartment(ctx, apartments[i].ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if img != nil {
			apartments[i].Images = []string{s.images.URL(img.Key)}
		}
	}
	return apartments, nil
}
