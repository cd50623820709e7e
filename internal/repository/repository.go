package repository

import (
	"context"
	"errors"

	"homestay-backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateDeviceToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

type ApartmentRepository interface {
	Create(ctx context.Context, apt *domain.Apartment) error
	GetByID(ctx context.Context, id int32) (*domain.Apartment, error)
	Update(ctx context.Context, apt *domain.Apartment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Apartment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Apartment, error)
	ListSaved(ctx context.Context, userID string) ([]domain.Apartment, error)

	GetOrCreateCategory(ctx context.Context, name string) (*domain.Category, error)
}

type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) error
	ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Image, error)
	FirstByApartment(ctx context.Context, apartmentID int32) (*domain.Image, error)
	DeleteByApartment(ctx context.Context, apartmentID int32) ([]string, error) // returns removed storage keys
	ListKeys(ctx context.Context) ([]string, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Request, error)
	UpdateStatus(ctx context.Context, id int32, status domain.RequestStatus) error
	SetResponse(ctx context.Context, id, responseID int32) error
	Delete(ctx context.Context, id int32) error
	DeleteByApartment(ctx context.Context, apartmentID int32) ([]int32, error) // returns deleted request ids
	DeleteByRequester(ctx context.Context, userID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Request, error)
	ListStalePending(ctx context.Context, before string) ([]domain.Request, error)
}

type ResponseRepository interface {
	Create(ctx context.Context, resp *domain.Response) error
	GetByID(ctx context.Context, id int32) (*domain.Response, error)
	SetReservation(ctx context.Context, id, reservationID int32) error
	Delete(ctx context.Context, id int32) error
	DeleteByRequests(ctx context.Context, requestIDs []int32) error
	DeleteByUser(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Response, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	Delete(ctx context.Context, id int32) error
	DeleteByApartment(ctx context.Context, apartmentID int32) error
	DeleteByCustomer(ctx context.Context, customerID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id int32) (*domain.Review, error)
	Delete(ctx context.Context, id int32) error
	DeleteByApartment(ctx context.Context, apartmentID int32) error
	DeleteByReviewer(ctx context.Context, reviewerID string) error
	ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Review, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	GetByID(ctx context.Context, id int32) (*domain.Feedback, error)
	Delete(ctx context.Context, id int32) error
	DeleteByWriter(ctx context.Context, writerID string) error
	List(ctx context.Context) ([]domain.Feedback, error)
}

type WishListRepository interface {
	Create(ctx context.Context, list *domain.WishList) error
	GetByUser(ctx context.Context, userID string) (*domain.WishList, error)
	AddEntry(ctx context.Context, wishListID, apartmentID int32) error
	RemoveEntry(ctx context.Context, wishListID, apartmentID int32) error
	DeleteEntriesByApartment(ctx context.Context, apartmentID int32) error
	DeleteByUser(ctx context.Context, userID string) error
}

// Repositories bundles every repository bound to the same connection or transaction.
type Repositories struct {
	Users        UserRepository
	Apartments   ApartmentRepository
	Images       ImageRepository
	Requests     RequestRepository
	Responses    ResponseRepository
	Reservations ReservationRepository
	Reviews      ReviewRepository
	Feedbacks    FeedbackRepository
	WishLists    WishListRepository
}

// Transactor runs fn as one unit of work. If fn returns an error, or panics,
// every write made through repos is rolled back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
