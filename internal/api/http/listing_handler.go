package http

import (
	"net/http"

	"homestay-backend/internal/service"

	"github.com/gorilla/mux"
)

type WishListHandler struct {
	wishlists service.WishListService
}

func NewWishListHandler(wishlists service.WishListService) *WishListHandler {
	return &WishListHandler{wishlists: wishlists}
}

func (h *WishListHandler) SaveListing(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	apartmentID, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	if err := h.wishlists.SaveListing(r.Context(), userID, apartmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Listing saved", nil)
}

func (h *WishListHandler) RemoveSavedListing(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	apartmentID, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	if err := h.wishlists.RemoveSavedListing(r.Context(), userID, apartmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Listing removed", nil)
}

func (h *WishListHandler) ListSavedListings(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.wishlists.ListSavedListings(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, apartments, "No saved listings found")
}

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) UploadReview(w http.ResponseWriter, r *http.Request) {
	reviewerID, err := actingUser(r, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	apartmentID, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	var in service.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	review, err := h.reviews.UploadReview(r.Context(), apartmentID, reviewerID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Review uploaded successfully", review)
}

func (h *ReviewHandler) ListApartmentReviews(w http.ResponseWriter, r *http.Request) {
	apartmentID, ok := pathID(r, "apartmentId")
	if !ok {
		badRequest(w, "invalid apartment id")
		return
	}
	reviews, err := h.reviews.ListApartmentReviews(r.Context(), apartmentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, reviews, "No reviews found for the apartment")
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "reviewId")
	if !ok {
		badRequest(w, "invalid review id")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.reviews.DeleteReview(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Review deleted successfully", nil)
}

type FeedbackHandler struct {
	feedbacks service.FeedbackService
}

func NewFeedbackHandler(feedbacks service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbacks: feedbacks}
}

func (h *FeedbackHandler) SendFeedback(w http.ResponseWriter, r *http.Request) {
	writerID, err := actingUser(r, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.FeedbackInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	fb, err := h.feedbacks.SendFeedback(r.Context(), writerID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Feedback sent successfully", fb)
}

func (h *FeedbackHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbacks.ListFeedbacks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, feedbacks, "No feedbacks found")
}

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "feedbackId")
	if !ok {
		badRequest(w, "invalid feedback id")
		return
	}
	actor, err := callerActor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.feedbacks.DeleteFeedback(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Feedback deleted successfully", nil)
}
