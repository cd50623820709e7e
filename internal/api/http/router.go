package http

import (
	"net/http"

	"homestay-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"
)

// Handlers groups every endpoint handler mounted by NewRouter.
type Handlers struct {
	Users        *UserHandler
	Apartments   *ApartmentHandler
	Reservations *ReservationHandler
	WishLists    *WishListHandler
	Reviews      *ReviewHandler
	Feedbacks    *FeedbackHandler
	Images       *ImageHandler
	Health       *HealthHandler
}

// NewRouter mounts all routes. Catalogue reads and the account entry points are
// public; mutations and a user's reservation history require a bearer token.
func NewRouter(h Handlers, tokens security.TokenManager, allowedOrigins []string) http.Handler {
	public := alice.New(recoverPanic, logRequest, secureHeaders)
	private := public.Append(requireAuth(tokens))

	r := mux.NewRouter()
	r.NotFoundHandler = public.ThenFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowedHandler = public.ThenFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Handle("/health", public.ThenFunc(h.Health.Health)).Methods(http.MethodGet)
	r.Handle("/images/{key:.+}", public.ThenFunc(h.Images.Download)).Methods(http.MethodGet)

	// Accounts
	r.Handle("/register", public.ThenFunc(h.Users.Register)).Methods(http.MethodPost)
	r.Handle("/login", public.ThenFunc(h.Users.Login)).Methods(http.MethodPost)
	r.Handle("/users", public.ThenFunc(h.Users.ListUsers)).Methods(http.MethodGet)
	r.Handle("/users/{userId}", public.ThenFunc(h.Users.GetUser)).Methods(http.MethodGet)
	r.Handle("/users/{userId}", private.ThenFunc(h.Users.EditProfile)).Methods(http.MethodPut)
	r.Handle("/users/{userId}/device", private.ThenFunc(h.Users.RegisterDevice)).Methods(http.MethodPut)
	r.Handle("/users/{userId}", private.ThenFunc(h.Users.DeleteUser)).Methods(http.MethodDelete)

	// Apartments
	r.Handle("/apartments", private.ThenFunc(h.Apartments.UploadApartment)).Methods(http.MethodPost)
	r.Handle("/apartments", public.ThenFunc(h.Apartments.ListApartments)).Methods(http.MethodGet)
	r.Handle("/apartments/{apartmentId}", public.ThenFunc(h.Apartments.GetApartment)).Methods(http.MethodGet)
	r.Handle("/apartments/{apartmentId}", private.ThenFunc(h.Apartments.EditApartment)).Methods(http.MethodPut)
	r.Handle("/apartments/{apartmentId}", private.ThenFunc(h.Apartments.DeleteApartment)).Methods(http.MethodDelete)
	r.Handle("/users/{userId}/apartments", public.ThenFunc(h.Apartments.ListUserApartments)).Methods(http.MethodGet)

	// Wishlist
	r.Handle("/users/{userId}/wishlist", public.ThenFunc(h.WishLists.ListSavedListings)).Methods(http.MethodGet)
	r.Handle("/users/{userId}/wishlist/{apartmentId}", private.ThenFunc(h.WishLists.SaveListing)).Methods(http.MethodPost)
	r.Handle("/users/{userId}/wishlist/{apartmentId}", private.ThenFunc(h.WishLists.RemoveSavedListing)).Methods(http.MethodDelete)

	// Reviews and feedback
	r.Handle("/apartments/{apartmentId}/reviews", private.ThenFunc(h.Reviews.UploadReview)).Methods(http.MethodPost)
	r.Handle("/apartments/{apartmentId}/reviews", public.ThenFunc(h.Reviews.ListApartmentReviews)).Methods(http.MethodGet)
	r.Handle("/reviews/{reviewId}", private.ThenFunc(h.Reviews.DeleteReview)).Methods(http.MethodDelete)
	r.Handle("/feedbacks", private.ThenFunc(h.Feedbacks.SendFeedback)).Methods(http.MethodPost)
	r.Handle("/feedbacks", public.ThenFunc(h.Feedbacks.ListFeedbacks)).Methods(http.MethodGet)
	r.Handle("/feedbacks/{feedbackId}", private.ThenFunc(h.Feedbacks.DeleteFeedback)).Methods(http.MethodDelete)

	// Reservation lifecycle
	r.Handle("/request", private.ThenFunc(h.Reservations.RequestReservation)).Methods(http.MethodPost)
	r.Handle("/accept-reservation-request", private.ThenFunc(h.Reservations.AcceptReservationRequest)).Methods(http.MethodPost)
	r.Handle("/reject-reservation-request", private.ThenFunc(h.Reservations.RejectReservationRequest)).Methods(http.MethodPost)
	r.Handle("/delete-reservation-request", private.ThenFunc(h.Reservations.DeleteReservationRequest)).Methods(http.MethodDelete)
	r.Handle("/GetUserReservationRequests", private.ThenFunc(h.Reservations.GetUserReservationRequests)).Methods(http.MethodGet)
	r.Handle("/GetUserReservations", private.ThenFunc(h.Reservations.GetUserReservations)).Methods(http.MethodGet)
	r.Handle("/GetUserResponses", private.ThenFunc(h.Reservations.GetUserResponses)).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
