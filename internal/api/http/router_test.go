package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/security"
	"homestay-backend/internal/service"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationService struct{ mock.Mock }

func (m *MockReservationService) RequestReservation(ctx context.Context, apartmentID int32, userID string, dates domain.DateRange) (*domain.Request, error) {
	args := m.Called(ctx, apartmentID, userID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockReservationService) AcceptReservationRequest(ctx context.Context, actor service.Actor, requestID int32) (*domain.Response, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockReservationService) RejectReservationRequest(ctx context.Context, actor service.Actor, requestID int32) (*domain.Response, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockReservationService) DeleteReservationRequest(ctx context.Context, actor service.Actor, requestID int32) error {
	return m.Called(ctx, actor, requestID).Error(0)
}
func (m *MockReservationService) GetUserReservationRequests(ctx context.Context, ownerID string) ([]domain.Request, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockReservationService) GetUserReservations(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationService) GetUserResponses(ctx context.Context, userID string) ([]domain.Response, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Response), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, userName, password string) (*domain.User, string, error) {
	args := m.Called(ctx, userName, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) EditProfile(ctx context.Context, id string, in service.EditProfileInput, picture *service.Upload) (*domain.User, bool, error) {
	args := m.Called(ctx, id, in, picture)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}
func (m *MockUserService) RegisterDevice(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	handler      http.Handler
	tokens       security.TokenManager
	reservations *MockReservationService
	users        *MockUserService
	images       *storage.LocalStore
	dir          string
}

func newTestServer(t *testing.T, ping error) *testServer {
	t.Helper()
	dir := t.TempDir()
	images, err := storage.NewLocalStore(storage.Config{
		Dir:          dir,
		BaseURL:      "http://localhost:8080",
		MaxFileSize:  1 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg", "image/gif"},
	})
	require.NoError(t, err)

	ts := &testServer{
		tokens:       security.NewTokenManager("test-secret", time.Hour),
		reservations: new(MockReservationService),
		users:        new(MockUserService),
		images:       images,
		dir:          dir,
	}
	ts.handler = NewRouter(Handlers{
		Users:        NewUserHandler(ts.users),
		Apartments:   NewApartmentHandler(nil),
		Reservations: NewReservationHandler(ts.reservations),
		WishLists:    NewWishListHandler(nil),
		Reviews:      NewReviewHandler(nil),
		Feedbacks:    NewFeedbackHandler(nil),
		Images:       NewImageHandler(images),
		Health:       NewHealthHandler(pingerFunc(func(context.Context) error { return ping })),
	}, ts.tokens, []string{"*"})
	return ts
}

func (ts *testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := ts.tokens.GenerateAccessToken(userID, "name", role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(req *http.Request) (*httptest.ResponseRecorder, Envelope) {
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	var env Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRouter_Auth(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("Missing token", func(t *testing.T) {
		rec, env := ts.do(jsonRequest(http.MethodPost, "/accept-reservation-request?requestId=1", "", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, http.StatusUnauthorized, env.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		rec, _ := ts.do(jsonRequest(http.MethodPost, "/accept-reservation-request?requestId=1", "garbage", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Acting for another user", func(t *testing.T) {
		body := map[string]any{"apartment_id": 7, "user_id": "user-bob", "start_date": "2024-05-01", "end_date": "2024-05-03"}
		rec, _ := ts.do(jsonRequest(http.MethodPost, "/request", ts.token(t, "user-jane", "CUSTOMER"), body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		ts.reservations.AssertNotCalled(t, "RequestReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rec, env := ts.do(jsonRequest(http.MethodGet, "/nope", "", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "route not found", env.Message)
	})
}

func TestReservationHandler(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.token(t, "user-jane", "CUSTOMER")
	jane := service.Actor{UserID: "user-jane"}

	t.Run("Request defaults to caller", func(t *testing.T) {
		dates := domain.DateRange{Start: "2024-05-01", End: "2024-05-03"}
		ts.reservations.On("RequestReservation", mock.Anything, int32(7), "user-jane", dates).
			Return(&domain.Request{ID: 42, Status: domain.RequestStatusPending}, nil).Once()

		body := map[string]any{"apartment_id": 7, "start_date": "2024-05-01", "end_date": "2024-05-03"}
		rec, env := ts.do(jsonRequest(http.MethodPost, "/request", token, body))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 200, env.Code)
		data := env.Data.(map[string]any)
		assert.Equal(t, float64(42), data["id"])
		assert.Equal(t, "PENDING", data["status"])
	})

	t.Run("Validation error", func(t *testing.T) {
		ts.reservations.On("RequestReservation", mock.Anything, int32(7), "user-jane", mock.Anything).
			Return(nil, fmt.Errorf("%w: end date must be >= start date", service.ErrValidation)).Once()

		body := map[string]any{"apartment_id": 7, "start_date": "2024-05-03", "end_date": "2024-05-01"}
		rec, env := ts.do(jsonRequest(http.MethodPost, "/request", token, body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Message, "end date must be >= start date")
	})

	t.Run("Accept conflict", func(t *testing.T) {
		ts.reservations.On("AcceptReservationRequest", mock.Anything, jane, int32(42)).
			Return(nil, fmt.Errorf("%w: request 42 is already REJECTED", service.ErrConflict)).Once()

		rec, _ := ts.do(jsonRequest(http.MethodPost, "/accept-reservation-request?requestId=42", token, nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Reject missing request", func(t *testing.T) {
		ts.reservations.On("RejectReservationRequest", mock.Anything, jane, int32(404)).
			Return(nil, fmt.Errorf("request %w", service.ErrNotFound)).Once()

		rec, env := ts.do(jsonRequest(http.MethodPost, "/reject-reservation-request?requestId=404", token, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "request not found", env.Message)
	})

	t.Run("Bad request id", func(t *testing.T) {
		rec, _ := ts.do(jsonRequest(http.MethodDelete, "/delete-reservation-request?requestId=abc", token, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Internal errors are hidden", func(t *testing.T) {
		ts.reservations.On("DeleteReservationRequest", mock.Anything, jane, int32(9)).Return(errors.New("pq: connection refused")).Once()

		rec, env := ts.do(jsonRequest(http.MethodDelete, "/delete-reservation-request?requestId=9", token, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", env.Message)
	})

	t.Run("Empty query answers 202", func(t *testing.T) {
		ts.reservations.On("GetUserReservationRequests", mock.Anything, "user-jane").Return([]domain.Request{}, nil).Once()

		rec, env := ts.do(jsonRequest(http.MethodGet, "/GetUserReservationRequests?userId=user-jane", token, nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "No requests found for the user", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("History defaults to caller", func(t *testing.T) {
		ts.reservations.On("GetUserReservations", mock.Anything, "user-jane").
			Return([]domain.Reservation{{ID: 9, CustomerID: "user-jane"}}, nil).Once()

		rec, _ := ts.do(jsonRequest(http.MethodGet, "/GetUserReservations", token, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestReservationHandler_Ownership(t *testing.T) {
	ts := newTestServer(t, nil)
	stranger := ts.token(t, "random-stranger", "CUSTOMER")
	strangerActor := service.Actor{UserID: "random-stranger"}

	t.Run("Stranger cannot accept", func(t *testing.T) {
		ts.reservations.On("AcceptReservationRequest", mock.Anything, strangerActor, int32(42)).
			Return(nil, fmt.Errorf("%w: not allowed to decide request 42", service.ErrUnauthorized)).Once()

		rec, env := ts.do(jsonRequest(http.MethodPost, "/accept-reservation-request?requestId=42", stranger, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, env.Message, "not allowed to decide request 42")
	})

	t.Run("Stranger cannot delete", func(t *testing.T) {
		ts.reservations.On("DeleteReservationRequest", mock.Anything, strangerActor, int32(42)).
			Return(fmt.Errorf("%w: not allowed to delete request 42", service.ErrUnauthorized)).Once()

		rec, _ := ts.do(jsonRequest(http.MethodDelete, "/delete-reservation-request?requestId=42", stranger, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Admin token carries the admin flag", func(t *testing.T) {
		ts.reservations.On("RejectReservationRequest", mock.Anything, service.Actor{UserID: "admin-1", Admin: true}, int32(42)).
			Return(&domain.Response{ID: 6, Status: domain.RequestStatusRejected}, nil).Once()

		rec, _ := ts.do(jsonRequest(http.MethodPost, "/reject-reservation-request?requestId=42", ts.token(t, "admin-1", "ADMIN"), nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("History of another user is private", func(t *testing.T) {
		for _, path := range []string{"/GetUserReservationRequests", "/GetUserReservations", "/GetUserResponses"} {
			rec, _ := ts.do(jsonRequest(http.MethodGet, path+"?userId=user-jane", stranger, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

			rec, _ = ts.do(jsonRequest(http.MethodGet, path+"?userId=user-jane", "", nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
		ts.reservations.AssertNotCalled(t, "GetUserReservations", mock.Anything, mock.Anything)
		ts.reservations.AssertNotCalled(t, "GetUserResponses", mock.Anything, mock.Anything)
	})
}

func TestUserHandler(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("Register validation details", func(t *testing.T) {
		fields := validation.Errors{{Field: "email", Message: "email must be a valid email address"}}
		ts.users.On("Register", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: %w", service.ErrValidation, fields)).Once()

		rec, env := ts.do(jsonRequest(http.MethodPost, "/register", "", map[string]string{"email": "x"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation failed", env.Message)
		details := env.Data.([]any)
		require.Len(t, details, 1)
		assert.Equal(t, "email", details[0].(map[string]any)["field"])
	})

	t.Run("Unknown body field", func(t *testing.T) {
		rec, _ := ts.do(jsonRequest(http.MethodPost, "/login", "", map[string]string{"bogus": "x"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Login", func(t *testing.T) {
		ts.users.On("Login", mock.Anything, "janedoe", "secret1").Return(&domain.User{ID: "user-jane"}, "tok", nil).Once()

		rec, env := ts.do(jsonRequest(http.MethodPost, "/login", "", map[string]string{"user_name": "janedoe", "password": "secret1"}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tok", env.Data.(map[string]any)["access_token"])
	})

	t.Run("Login wrong password", func(t *testing.T) {
		ts.users.On("Login", mock.Anything, "janedoe", "nope").Return(nil, "", service.ErrInvalidCredentials).Once()

		rec, _ := ts.do(jsonRequest(http.MethodPost, "/login", "", map[string]string{"user_name": "janedoe", "password": "nope"}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Edit profile without changes", func(t *testing.T) {
		var body bytes.Buffer
		form := multipart.NewWriter(&body)
		require.NoError(t, form.WriteField("user_name", "janedoe"))
		require.NoError(t, form.Close())
		ts.users.On("EditProfile", mock.Anything, "user-jane", service.EditProfileInput{UserName: "janedoe"}, (*service.Upload)(nil)).
			Return(&domain.User{ID: "user-jane"}, false, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/users/user-jane", &body)
		req.Header.Set("Content-Type", form.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+ts.token(t, "user-jane", "CUSTOMER"))
		rec, env := ts.do(req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "No changes submitted", env.Message)
	})

	t.Run("Admin deletes another user", func(t *testing.T) {
		ts.users.On("DeleteUser", mock.Anything, "user-bob").Return(nil).Once()

		rec, _ := ts.do(jsonRequest(http.MethodDelete, "/users/user-bob", ts.token(t, "admin-1", "ADMIN"), nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestImageAndHealth(t *testing.T) {
	t.Run("Download stored image", func(t *testing.T) {
		ts := newTestServer(t, nil)
		require.NoError(t, os.WriteFile(filepath.Join(ts.dir, storage.PrefixApartments, "a.png"), []byte("png-bytes"), 0o644))

		rec, _ := ts.do(httptest.NewRequest(http.MethodGet, "/images/apartments/a.png", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		body, _ := io.ReadAll(rec.Body)
		assert.Equal(t, "png-bytes", string(body))
	})

	t.Run("Missing image", func(t *testing.T) {
		ts := newTestServer(t, nil)
		rec, _ := ts.do(httptest.NewRequest(http.MethodGet, "/images/apartments/missing.png", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Health", func(t *testing.T) {
		rec, _ := newTestServer(t, nil).do(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = newTestServer(t, errors.New("db down")).do(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
