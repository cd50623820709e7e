package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/security"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid user name or password", ErrUnauthorized)

type userService struct {
	repos     repository.Repositories
	tx        repository.Transactor
	images    storage.ImageStore
	tokens    security.TokenManager
	validator *validation.Validator
}

func NewUserService(
	repos repository.Repositories,
	tx repository.Transactor,
	images storage.ImageStore,
	tokens security.TokenManager,
	validator *validation.Validator,
) UserService {
	return &userService{
		repos:     repos,
		tx:        tx,
		images:    images,
		tokens:    tokens,
		validator: validator,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	logger.EnterMethod("userService.Register", "userName", in.UserName, "email", in.Email)

	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate(s.validator, in); err != nil {
		logger.ExitMethodWithError("userService.Register", err, "reason", "invalid input")
		return nil, err
	}
	if err := s.ensureAvailable(ctx, "", in.UserName, in.Email); err != nil {
		logger.ExitMethodWithError("userService.Register", err, "userName", in.UserName)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		UserName:     in.UserName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleCustomer,
	}
	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return translate(err, "user")
		}
		if err := repos.WishLists.Create(ctx, &domain.WishList{UserID: user.ID}); err != nil {
			return fmt.Errorf("failed to create wishlist: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("userService.Register", err, "userName", in.UserName)
		return nil, err
	}

	logger.ExitMethod("userService.Register", "userID", user.ID)
	return user, nil
}

// ensureAvailable fails with ErrConflict when userName or email belongs to a
// user other than selfID. Empty values are not checked.
func (s *userService) ensureAvailable(ctx context.Context, selfID, userName, email string) error {
	if userName != "" {
		existing, err := s.repos.Users.GetByUserName(ctx, userName)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return conflict("user name is already taken")
		}
	}
	if email != "" {
		existing, err := s.repos.Users.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return conflict("email is already registered")
		}
	}
	return nil
}

func (s *userService) Login(ctx context.Context, userName, password string) (*domain.User, string, error) {
	user, err := s.repos.Users.GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		return nil, "", translate(err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Info("Login rejected", "userName", userName)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.UserName, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return withImage(s.images, user), token, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}
	return withImage(s.images, user), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		withImage(s.images, &users[i])
	}
	return users, nil
}

func (s *userService) EditProfile(ctx context.Context, id string, in EditProfileInput, picture *Upload) (*domain.User, bool, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate(s.validator, in); err != nil {
		return nil, false, err
	}

	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, false, translate(err, "user")
	}

	if in.UserName == user.UserName {
		in.UserName = ""
	}
	if strings.EqualFold(in.Email, user.Email) {
		in.Email = ""
	}
	if in.UserName == "" && in.Email == "" && picture == nil {
		return withImage(s.images, user), false, nil
	}
	if err := s.ensureAvailable(ctx, user.ID, in.UserName, in.Email); err != nil {
		return nil, false, err
	}

	if in.UserName != "" {
		user.UserName = in.UserName
	}
	if in.Email != "" {
		user.Email = in.Email
	}

	var oldPicture, newPicture string
	if picture != nil {
		key, err := s.images.Save(ctx, storage.PrefixProfiles, picture.Filename, picture.Content)
		if err != nil {
			return nil, false, translate(err, "profile picture")
		}
		newPicture = key
		if user.ProfilePicture != nil {
			oldPicture = *user.ProfilePicture
		}
		user.ProfilePicture = &newPicture
	}

	if err := s.repos.Users.Update(ctx, user); err != nil {
		if newPicture != "" {
			removeFiles(ctx, s.images, []string{newPicture})
		}
		return nil, false, translate(err, "user")
	}
	if oldPicture != "" {
		removeFiles(ctx, s.images, []string{oldPicture})
	}
	return withImage(s.images, user), true, nil
}

func (s *userService) RegisterDevice(ctx context.Context, id, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return invalid("device token is required")
	}
	return translate(s.repos.Users.UpdateDeviceToken(ctx, id, token), "user")
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	logger.EnterMethod("userService.DeleteUser", "userID", id)

	var keys []string
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return translate(err, "user")
		}

		if err := repos.Responses.DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if err := repos.Reservations.DeleteByCustomer(ctx, id); err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}
		if err := repos.Requests.DeleteByRequester(ctx, id); err != nil {
			return fmt.Errorf("failed to delete requests: %w", err)
		}
		if err := repos.Feedbacks.DeleteByWriter(ctx, id); err != nil {
			return fmt.Errorf("failed to delete feedbacks: %w", err)
		}

		apartments, err := repos.Apartments.ListByOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list apartments: %w", err)
		}
		for _, apt := range apartments {
			aptKeys, err := deleteApartmentCascade(ctx, repos, apt.ID)
			if err != nil {
				return err
			}
			keys = append(keys, aptKeys...)
		}

		if err := repos.WishLists.DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("failed to delete wishlist: %w", err)
		}
		if err := repos.Reviews.DeleteByReviewer(ctx, id); err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := repos.Users.Delete(ctx, id); err != nil {
			return translate(err, "user")
		}

		if user.ProfilePicture != nil {
			keys = append(keys, *user.ProfilePicture)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("userService.DeleteUser", err, "userID", id)
		return err
	}

	removeFiles(ctx, s.images, keys)
	logger.ExitMethod("userService.DeleteUser", "userID", id, "filesRemoved", len(keys))
	return nil
}
