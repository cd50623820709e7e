package service

import (
	"context"
	"io"

	"homestay-backend/internal/domain"
)

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, userName, password string) (*domain.User, string, error) // user, access token
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	EditProfile(ctx context.Context, id string, in EditProfileInput, picture *Upload) (*domain.User, bool, error) // user, changed
	RegisterDevice(ctx context.Context, id, token string) error
	DeleteUser(ctx context.Context, id string) error
}

type ApartmentService interface {
	UploadApartment(ctx context.Context, ownerID string, in ApartmentInput, images []Upload) (*domain.Apartment, error)
	EditApartment(ctx context.Context, actor Actor, id int32, in ApartmentInput) (*domain.Apartment, error)
	GetApartment(ctx context.Context, id int32) (*domain.Apartment, error)
	ListApartments(ctx context.Context) ([]domain.Apartment, error)
	ListUserApartments(ctx context.Context, ownerID string) ([]domain.Apartment, error)
	DeleteApartment(ctx context.Context, actor Actor, id int32) error
}

type ReservationService interface {
	RequestReservation(ctx context.Context, apartmentID int32, userID string, dates domain.DateRange) (*domain.Request, error)
	AcceptReservationRequest(ctx context.Context, actor Actor, requestID int32) (*domain.Response, error)
	RejectReservationRequest(ctx context.Context, actor Actor, requestID int32) (*domain.Response, error)
	DeleteReservationRequest(ctx context.Context, actor Actor, requestID int32) error
	GetUserReservationRequests(ctx context.Context, ownerID string) ([]domain.Request, error)
	GetUserReservations(ctx context.Context, customerID string) ([]domain.Reservation, error)
	GetUserResponses(ctx context.Context, userID string) ([]domain.Response, error)
}

type WishListService interface {
	SaveListing(ctx context.Context, userID string, apartmentID int32) error
	RemoveSavedListing(ctx context.Context, userID string, apartmentID int32) error
	ListSavedListings(ctx context.Context, userID string) ([]domain.Apartment, error)
}

type ReviewService interface {
	UploadReview(ctx context.Context, apartmentID int32, reviewerID string, in ReviewInput) (*domain.Review, error)
	ListApartmentReviews(ctx context.Context, apartmentID int32) ([]domain.Review, error)
	DeleteReview(ctx context.Context, actor Actor, id int32) error
}

type FeedbackService interface {
	SendFeedback(ctx context.Context, writerID string, in FeedbackInput) (*domain.Feedback, error)
	ListFeedbacks(ctx context.Context) ([]domain.Feedback, error)
	DeleteFeedback(ctx context.Context, actor Actor, id int32) error
}

// Upload is an image file received from a client.
type Upload struct {
	Filename string
	Content  io.Reader
}

type RegisterInput struct {
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	UserName        string `json:"user_name" validate:"required,min=5,max=15"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// EditProfileInput leaves a field unchanged when it is empty.
type EditProfileInput struct {
	Email    string `json:"email" validate:"omitempty,email"`
	UserName string `json:"user_name" validate:"omitempty,min=5,max=15"`
}

type ApartmentInput struct {
	Title          string           `json:"title" validate:"required,max=255"`
	Description    string           `json:"description"`
	Price          int32            `json:"price" validate:"gt=0"`
	Bedrooms       int32            `json:"bedrooms" validate:"gte=0"`
	Bathrooms      int32            `json:"bathrooms" validate:"gte=0"`
	Beds           int32            `json:"beds" validate:"gte=0"`
	MasterBedrooms int32            `json:"master_bedrooms" validate:"gte=0"`
	Area           float64          `json:"area" validate:"gte=0"`
	TypeOfPlace    string           `json:"type_of_place"`
	Category       string           `json:"category" validate:"required,max=100"`
	Location       LocationInput    `json:"location"`
	Amenities      domain.Amenities `json:"amenities"`
}

type LocationInput struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	City      string  `json:"city" validate:"required"`
	Country   string  `json:"country" validate:"required"`
}

type ReviewInput struct {
	Content string  `json:"content" validate:"required"`
	Value   float64 `json:"value" validate:"gte=0,lte=5"`
}

type FeedbackInput struct {
	Content string `json:"content" validate:"required"`
	Value   int32  `json:"value" validate:"gte=0,lte=5"`
}
