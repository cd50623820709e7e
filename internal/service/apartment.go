package service

import (
	"context"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"
)

type apartmentService struct {
	repos     repository.Repositories
	tx        repository.Transactor
	images    storage.ImageStore
	validator *validation.Validator
}

func NewApartmentService(
	repos repository.Repositories,
	tx repository.Transactor,
	images storage.ImageStore,
	validator *validation.Validator,
) ApartmentService {
	return &apartmentService{
		repos:     repos,
		tx:        tx,
		images:    images,
		validator: validator,
	}
}

func (in ApartmentInput) apply(a *domain.Apartment) {
	a.Title = in.Title
	a.Description = in.Description
	a.Price = in.Price
	a.Bedrooms = in.Bedrooms
	a.Bathrooms = in.Bathrooms
	a.Beds = in.Beds
	a.MasterBedrooms = in.MasterBedrooms
	a.Area = in.Area
	a.TypeOfPlace = in.TypeOfPlace
	a.Location = domain.Location{
		Latitude:  in.Location.Latitude,
		Longitude: in.Location.Longitude,
		City:      in.Location.City,
		Country:   in.Location.Country,
	}
	a.Amenities = in.Amenities
}

func (s *apartmentService) UploadApartment(ctx context.Context, ownerID string, in ApartmentInput, uploads []Upload) (*domain.Apartment, error) {
	logger.EnterMethod("apartmentService.UploadApartment", "ownerID", ownerID, "images", len(uploads))

	if err := validate(s.validator, in); err != nil {
		return nil, err
	}
	owner, err := s.repos.Users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, translate(err, "user")
	}

	// Files go first so a failed upload never leaves rows behind. If the
	// transaction fails the stored files are removed again.
	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		key, err := s.images.Save(ctx, storage.PrefixApartments, u.Filename, u.Content)
		if err != nil {
			s.removeFiles(ctx, keys)
			logger.ExitMethodWithError("apartmentService.UploadApartment", err, "filename", u.Filename)
			return nil, translate(err, "image")
		}
		keys = append(keys, key)
	}

	apt := &domain.Apartment{OwnerID: owner.ID}
	in.apply(apt)

	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		category, err := repos.Apartments.GetOrCreateCategory(ctx, in.Category)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		apt.CategoryID = category.ID
		apt.CategoryName = category.Name

		if err := repos.Apartments.Create(ctx, apt); err != nil {
			return fmt.Errorf("failed to create apartment: %w", err)
		}
		for _, key := range keys {
			if err := repos.Images.Create(ctx, &domain.Image{ApartmentID: apt.ID, Key: key}); err != nil {
				return fmt.Errorf("failed to record image: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.removeFiles(ctx, keys)
		logger.ExitMethodWithError("apartmentService.UploadApartment", err, "ownerID", ownerID)
		return nil, err
	}

	apt.Owner = withImage(s.images, owner)
	apt.Images = s.urls(keys)
	logger.ExitMethod("apartmentService.UploadApartment", "apartmentID", apt.ID)
	return apt, nil
}

func (s *apartmentService) EditApartment(ctx context.Context, actor Actor, id int32, in ApartmentInput) (*domain.Apartment, error) {
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}

	var apt *domain.Apartment
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		apt, err = repos.Apartments.GetByID(ctx, id)
		if err != nil {
			return translate(err, "apartment")
		}
		if err := actor.authorize(fmt.Sprintf("edit apartment %d", id), apt.OwnerID); err != nil {
			return err
		}
		category, err := repos.Apartments.GetOrCreateCategory(ctx, in.Category)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		in.apply(apt)
		apt.CategoryID = category.ID
		apt.CategoryName = category.Name
		return translate(repos.Apartments.Update(ctx, apt), "apartment")
	})
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *apartmentService) GetApartment(ctx context.Context, id int32) (*domain.Apartment, error) {
	apt, err := s.repos.Apartments.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "apartment")
	}
	if err := s.populate(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *apartmentService) ListApartments(ctx context.Context) ([]domain.Apartment, error) {
	apartments, err := s.repos.Apartments.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.populateAll(ctx, apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (s *apartmentService) ListUserApartments(ctx context.Context, ownerID string) ([]domain.Apartment, error) {
	if _, err := s.repos.Users.GetByID(ctx, ownerID); err != nil {
		return nil, translate(err, "user")
	}
	apartments, err := s.repos.Apartments.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.populateAll(ctx, apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (s *apartmentService) DeleteApartment(ctx context.Context, actor Actor, id int32) error {
	logger.EnterMethod("apartmentService.DeleteApartment", "apartmentID", id)

	var keys []string
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		apt, err := repos.Apartments.GetByID(ctx, id)
		if err != nil {
			return translate(err, "apartment")
		}
		if err := actor.authorize(fmt.Sprintf("delete apartment %d", id), apt.OwnerID); err != nil {
			return err
		}
		keys, err = deleteApartmentCascade(ctx, repos, id)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("apartmentService.DeleteApartment", err, "apartmentID", id)
		return err
	}

	s.removeFiles(ctx, keys)
	logger.ExitMethod("apartmentService.DeleteApartment", "apartmentID", id, "imagesRemoved", len(keys))
	return nil
}

// deleteApartmentCascade removes an apartment and every row that depends on it,
// returning the storage keys of its images. The caller owns the transaction.
func deleteApartmentCascade(ctx context.Context, repos repository.Repositories, id int32) ([]string, error) {
	if err := repos.Reviews.DeleteByApartment(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete reviews of apartment %d: %w", id, err)
	}
	requestIDs, err := repos.Requests.DeleteByApartment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete requests of apartment %d: %w", id, err)
	}
	if err := repos.Responses.DeleteByRequests(ctx, requestIDs); err != nil {
		return nil, fmt.Errorf("failed to delete responses of apartment %d: %w", id, err)
	}
	if err := repos.Reservations.DeleteByApartment(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete reservations of apartment %d: %w", id, err)
	}
	keys, err := repos.Images.DeleteByApartment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete images of apartment %d: %w", id, err)
	}
	if err := repos.WishLists.DeleteEntriesByApartment(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete wishlist entries of apartment %d: %w", id, err)
	}
	if err := repos.Apartments.Delete(ctx, id); err != nil {
		return nil, translate(err, "apartment")
	}
	return keys, nil
}

func (s *apartmentService) populate(ctx context.Context, apt *domain.Apartment) error {
	owner, err := s.repos.Users.GetByID(ctx, apt.OwnerID)
	if err != nil {
		return translate(err, "apartment owner")
	}
	apt.Owner = withImage(s.images, owner)

	images, err := s.repos.Images.ListByApartment(ctx, apt.ID)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		keys = append(keys, img.Key)
	}
	apt.Images = s.urls(keys)
	return nil
}

func (s *apartmentService) populateAll(ctx context.Context, apartments []domain.Apartment) error {
	for i := range apartments {
		if err := s.populate(ctx, &apartments[i]); err != nil {
			return err
		}
	}
	return nil
}

// withImage fills the download address of the user's profile picture.
func withImage(images storage.ImageStore, u *domain.User) *domain.User {
	if u != nil && u.ProfilePicture != nil {
		u.ImageSrc = images.URL(*u.ProfilePicture)
	}
	return u
}

func (s *apartmentService) urls(keys []string) []string {
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, s.images.URL(key))
	}
	return urls
}

func (s *apartmentService) removeFiles(ctx context.Context, keys []string) {
	removeFiles(ctx, s.images, keys)
}

// removeFiles deletes stored files on a best effort basis.
func removeFiles(ctx context.Context, images storage.ImageStore, keys []string) {
	for _, key := range keys {
		if err := images.Delete(ctx, key); err != nil {
			logger.Warn("Failed to remove stored image", "key", key, "error", err)
		}
	}
}
