package service

import (
	"context"
	"io"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// fakeTx runs the unit of work against the same mocked repositories and
// records how it ended.
type fakeTx struct {
	repos      repository.Repositories
	committed  int
	rolledBack int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := fn(f.repos); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

type mockRepos struct {
	users        *MockUserRepo
	apartments   *MockApartmentRepo
	images       *MockImageRepo
	requests     *MockRequestRepo
	responses    *MockResponseRepo
	reservations *MockReservationRepo
	reviews      *MockReviewRepo
	feedbacks    *MockFeedbackRepo
	wishlists    *MockWishListRepo
}

func newMockRepos() (*mockRepos, repository.Repositories, *fakeTx) {
	m := &mockRepos{
		users:        new(MockUserRepo),
		apartments:   new(MockApartmentRepo),
		images:       new(MockImageRepo),
		requests:     new(MockRequestRepo),
		responses:    new(MockResponseRepo),
		reservations: new(MockReservationRepo),
		reviews:      new(MockReviewRepo),
		feedbacks:    new(MockFeedbackRepo),
		wishlists:    new(MockWishListRepo),
	}
	repos := repository.Repositories{
		Users:        m.users,
		Apartments:   m.apartments,
		Images:       m.images,
		Requests:     m.requests,
		Responses:    m.responses,
		Reservations: m.reservations,
		Reviews:      m.reviews,
		Feedbacks:    m.feedbacks,
		WishLists:    m.wishlists,
	}
	return m, repos, &fakeTx{repos: repos}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.apartments.AssertExpectations(t)
	m.images.AssertExpectations(t)
	m.requests.AssertExpectations(t)
	m.responses.AssertExpectations(t)
	m.reservations.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
	m.feedbacks.AssertExpectations(t)
	m.wishlists.AssertExpectations(t)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepo) UpdateDeviceToken(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApartmentRepo struct{ mock.Mock }

func (m *MockApartmentRepo) Create(ctx context.Context, a *domain.Apartment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockApartmentRepo) GetByID(ctx context.Context, id int32) (*domain.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) Update(ctx context.Context, a *domain.Apartment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockApartmentRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockApartmentRepo) List(ctx context.Context) ([]domain.Apartment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Apartment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) ListSaved(ctx context.Context, userID string) ([]domain.Apartment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) GetOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type MockImageRepo struct{ mock.Mock }

func (m *MockImageRepo) Create(ctx context.Context, img *domain.Image) error {
	return m.Called(ctx, img).Error(0)
}
func (m *MockImageRepo) ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Image, error) {
	args := m.Called(ctx, apartmentID)
	return args.Get(0).([]domain.Image), args.Error(1)
}
func (m *MockImageRepo) FirstByApartment(ctx context.Context, apartmentID int32) (*domain.Image, error) {
	args := m.Called(ctx, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}
func (m *MockImageRepo) DeleteByApartment(ctx context.Context, apartmentID int32) ([]string, error) {
	args := m.Called(ctx, apartmentID)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockImageRepo) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockRequestRepo struct{ mock.Mock }

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	return m.Called(ctx, req).Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id int32, status domain.RequestStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockRequestRepo) SetResponse(ctx context.Context, id, responseID int32) error {
	return m.Called(ctx, id, responseID).Error(0)
}
func (m *MockRequestRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockRequestRepo) DeleteByApartment(ctx context.Context, apartmentID int32) ([]int32, error) {
	args := m.Called(ctx, apartmentID)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockRequestRepo) DeleteByRequester(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockRequestRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Request, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockRequestRepo) ListStalePending(ctx context.Context, before string) ([]domain.Request, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.Request), args.Error(1)
}

type MockResponseRepo struct{ mock.Mock }

func (m *MockResponseRepo) Create(ctx context.Context, resp *domain.Response) error {
	return m.Called(ctx, resp).Error(0)
}
func (m *MockResponseRepo) GetByID(ctx context.Context, id int32) (*domain.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockResponseRepo) SetReservation(ctx context.Context, id, reservationID int32) error {
	return m.Called(ctx, id, reservationID).Error(0)
}
func (m *MockResponseRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockResponseRepo) DeleteByRequests(ctx context.Context, requestIDs []int32) error {
	return m.Called(ctx, requestIDs).Error(0)
}
func (m *MockResponseRepo) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockResponseRepo) ListByUser(ctx context.Context, userID string) ([]domain.Response, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Response), args.Error(1)
}

type MockReservationRepo struct{ mock.Mock }

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockReservationRepo) DeleteByApartment(ctx context.Context, apartmentID int32) error {
	return m.Called(ctx, apartmentID).Error(0)
}
func (m *MockReservationRepo) DeleteByCustomer(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}
func (m *MockReservationRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}
func (m *MockReviewRepo) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockReviewRepo) DeleteByApartment(ctx context.Context, apartmentID int32) error {
	return m.Called(ctx, apartmentID).Error(0)
}
func (m *MockReviewRepo) DeleteByReviewer(ctx context.Context, reviewerID string) error {
	return m.Called(ctx, reviewerID).Error(0)
}
func (m *MockReviewRepo) ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Review, error) {
	args := m.Called(ctx, apartmentID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockFeedbackRepo struct{ mock.Mock }

func (m *MockFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	return m.Called(ctx, fb).Error(0)
}
func (m *MockFeedbackRepo) GetByID(ctx context.Context, id int32) (*domain.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}
func (m *MockFeedbackRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockFeedbackRepo) DeleteByWriter(ctx context.Context, writerID string) error {
	return m.Called(ctx, writerID).Error(0)
}
func (m *MockFeedbackRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

type MockWishListRepo struct{ mock.Mock }

func (m *MockWishListRepo) Create(ctx context.Context, list *domain.WishList) error {
	return m.Called(ctx, list).Error(0)
}
func (m *MockWishListRepo) GetByUser(ctx context.Context, userID string) (*domain.WishList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WishList), args.Error(1)
}
func (m *MockWishListRepo) AddEntry(ctx context.Context, wishListID, apartmentID int32) error {
	return m.Called(ctx, wishListID, apartmentID).Error(0)
}
func (m *MockWishListRepo) RemoveEntry(ctx context.Context, wishListID, apartmentID int32) error {
	return m.Called(ctx, wishListID, apartmentID).Error(0)
}
func (m *MockWishListRepo) DeleteEntriesByApartment(ctx context.Context, apartmentID int32) error {
	return m.Called(ctx, apartmentID).Error(0)
}
func (m *MockWishListRepo) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Save(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, prefix, filename, r)
	return args.String(0), args.Error(1)
}
func (m *MockImageStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockImageStore) List(ctx context.Context, prefix string, before time.Time) ([]string, error) {
	args := m.Called(ctx, prefix, before)
	return args.Get(0).([]string), args.Error(1)
}

// URL is deterministic so tests need no expectations for it.
func (m *MockImageStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return "http://img/" + key
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) RequestReceived(ctx context.Context, owner *domain.User, req *domain.Request) error {
	return m.Called(ctx, owner, req).Error(0)
}
func (m *MockNotifier) RequestAccepted(ctx context.Context, requester *domain.User, resp *domain.Response) error {
	return m.Called(ctx, requester, resp).Error(0)
}
func (m *MockNotifier) RequestRejected(ctx context.Context, requester *domain.User, resp *domain.Response) error {
	return m.Called(ctx, requester, resp).Error(0)
}
