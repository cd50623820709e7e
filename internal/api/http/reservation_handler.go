package http

import (
	"net/http"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type reservationRequest struct {
	ApartmentID int32  `json:"apartment_id"`
	UserID      string `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (h *ReservationHandler) RequestReservation(w http.ResponseWriter, r *http.Request) {
	var in reservationRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	userID, err := actingUser(r, in.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.reservations.RequestReservation(r.Context(), in.ApartmentID, userID, domain.DateRange{
		Start: in.StartDate,
		End:   in.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Reservation request sent successfully", req)
}

func (h *ReservationHandler) AcceptReservationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "requestId")
	if !ok {
		badRequest(w, "invalid requestId")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.reservations.AcceptReservationRequest(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Reservation request accepted successfully", resp)
}

func (h *ReservationHandler) RejectReservationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "requestId")
	if !ok {
		badRequest(w, "invalid requestId")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.reservations.RejectReservationRequest(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Reservation request rejected successfully", resp)
}

func (h *ReservationHandler) DeleteReservationRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "requestId")
	if !ok {
		badRequest(w, "invalid requestId")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.reservations.DeleteReservationRequest(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Reservation request deleted successfully", nil)
}

func (h *ReservationHandler) GetUserReservationRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	requests, err := h.reservations.GetUserReservationRequests(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, requests, "No requests found for the user")
}

func (h *ReservationHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	reservations, err := h.reservations.GetUserReservations(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, reservations, "No reservations found for the user")
}

func (h *ReservationHandler) GetUserResponses(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	responses, err := h.reservations.GetUserResponses(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, responses, "No responses found for the user")
}
