package service

import (
	"context"
	"errors"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/notify"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/utils"
)

type reservationService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	images   storage.ImageStore
	notifier notify.Notifier
}

func NewReservationService(
	repos repository.Repositories,
	tx repository.Transactor,
	images storage.ImageStore,
	notifier notify.Notifier,
) ReservationService {
	return &reservationService{
		repos:    repos,
		tx:       tx,
		images:   images,
		notifier: notifier,
	}
}

func requestContent(requester *domain.User, dates domain.DateRange) string {
	return fmt.Sprintf("%s is requesting to reserve the apartment for the date range %s. Please review and respond accordingly.",
		requester.FullName(), dates)
}

func acceptedContent(owner *domain.User) string {
	return fmt.Sprintf("Owner %s accepted your reservation for the apartment. Please proceed accordingly.", owner.FullName())
}

func rejectedContent(owner *domain.User) string {
	return fmt.Sprintf("Owner %s has rejected your reservation request for the apartment.", owner.FullName())
}

func reservationContent(owner *domain.User, dates domain.DateRange) string {
	return fmt.Sprintf("Dear guest, we are delighted to inform you that you have successfully reserved a stay at the luxurious %s's residence. "+
		"Your upcoming experience promises comfort, elegance, and unparalleled hospitality. We look forward to welcoming you on %s.",
		owner.FullName(), dates)
}

func (s *reservationService) RequestReservation(ctx context.Context, apartmentID int32, userID string, dates domain.DateRange) (*domain.Request, error) {
	logger.EnterMethod("reservationService.RequestReservation", "apartmentID", apartmentID, "userID", userID)

	dates, err := utils.NormalizeDateRange(dates)
	if err != nil {
		logger.ExitMethodWithError("reservationService.RequestReservation", err, "reason", "invalid date range")
		return nil, invalid(err.Error())
	}

	requester, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	apt, err := s.repos.Apartments.GetByID(ctx, apartmentID)
	if err != nil {
		return nil, translate(err, "apartment")
	}
	if apt.OwnerID == requester.ID {
		return nil, invalid("owners cannot reserve their own apartment")
	}
	owner, err := s.repos.Users.GetByID(ctx, apt.OwnerID)
	if err != nil {
		return nil, translate(err, "apartment owner")
	}

	req := &domain.Request{
		ApartmentID: apt.ID,
		RequesterID: requester.ID,
		OwnerID:     apt.OwnerID,
		DateRange:   dates,
		Content:     requestContent(requester, dates),
		Status:      domain.RequestStatusPending,
	}
	if err := s.repos.Requests.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("reservationService.RequestReservation", err, "apartmentID", apartmentID)
		return nil, translate(err, "request")
	}

	if err := s.notifier.RequestReceived(ctx, owner, req); err != nil {
		logger.Debug("Request notification incomplete", "requestID", req.ID, "error", err)
	}

	logger.ExitMethod("reservationService.RequestReservation", "requestID", req.ID)
	return req, nil
}

// decide loads the request under a row lock and checks that the actor owns the
// apartment and that the request is still pending.
func decide(ctx context.Context, repos repository.Repositories, actor Actor, requestID int32) (*domain.Request, *domain.User, error) {
	req, err := repos.Requests.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return nil, nil, translate(err, "request")
	}
	if err := actor.authorize(fmt.Sprintf("decide request %d", req.ID), req.OwnerID); err != nil {
		return nil, nil, err
	}
	if !req.IsPending() {
		return nil, nil, conflict(fmt.Sprintf("request %d is already %s", req.ID, req.Status))
	}
	owner, err := repos.Users.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, nil, translate(err, "apartment owner")
	}
	return req, owner, nil
}

func (s *reservationService) AcceptReservationRequest(ctx context.Context, actor Actor, requestID int32) (*domain.Response, error) {
	logger.EnterMethod("reservationService.AcceptReservationRequest", "requestID", requestID, "actor", actor.UserID)

	var resp *domain.Response
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		req, owner, err := decide(ctx, repos, actor, requestID)
		if err != nil {
			return err
		}

		if err := repos.Requests.UpdateStatus(ctx, req.ID, domain.RequestStatusAccepted); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		resp = &domain.Response{
			RequestID: req.ID,
			UserID:    req.RequesterID,
			Content:   acceptedContent(owner),
			DateRange: req.DateRange,
			Status:    domain.RequestStatusAccepted,
		}
		if err := repos.Responses.Create(ctx, resp); err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		if err := repos.Requests.SetResponse(ctx, req.ID, resp.ID); err != nil {
			return fmt.Errorf("failed to link response: %w", err)
		}

		res := &domain.Reservation{
			ApartmentID: req.ApartmentID,
			CustomerID:  req.RequesterID,
			ResponseID:  resp.ID,
			Date:        req.DateRange,
			Content:     reservationContent(owner, req.DateRange),
		}
		if err := repos.Reservations.Create(ctx, res); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		if err := repos.Responses.SetReservation(ctx, resp.ID, res.ID); err != nil {
			return fmt.Errorf("failed to link reservation: %w", err)
		}
		resp.ReservationID = &res.ID
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("reservationService.AcceptReservationRequest", err, "requestID", requestID)
		return nil, err
	}

	s.notifyDecision(ctx, resp)
	logger.ExitMethod("reservationService.AcceptReservationRequest", "responseID", resp.ID, "reservationID", *resp.ReservationID)
	return resp, nil
}

func (s *reservationService) RejectReservationRequest(ctx context.Context, actor Actor, requestID int32) (*domain.Response, error) {
	logger.EnterMethod("reservationService.RejectReservationRequest", "requestID", requestID, "actor", actor.UserID)

	var resp *domain.Response
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		req, owner, err := decide(ctx, repos, actor, requestID)
		if err != nil {
			return err
		}

		if err := repos.Requests.UpdateStatus(ctx, req.ID, domain.RequestStatusRejected); err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		resp = &domain.Response{
			RequestID: req.ID,
			UserID:    req.RequesterID,
			Content:   rejectedContent(owner),
			DateRange: req.DateRange,
			Status:    domain.RequestStatusRejected,
		}
		if err := repos.Responses.Create(ctx, resp); err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		if err := repos.Requests.SetResponse(ctx, req.ID, resp.ID); err != nil {
			return fmt.Errorf("failed to link response: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("reservationService.RejectReservationRequest", err, "requestID", requestID)
		return nil, err
	}

	s.notifyDecision(ctx, resp)
	logger.ExitMethod("reservationService.RejectReservationRequest", "responseID", resp.ID)
	return resp, nil
}

func (s *reservationService) notifyDecision(ctx context.Context, resp *domain.Response) {
	requester, err := s.repos.Users.GetByID(ctx, resp.UserID)
	if err != nil {
		logger.Warn("Skipping decision notification", "userID", resp.UserID, "error", err)
		return
	}
	if resp.Status == domain.RequestStatusAccepted {
		err = s.notifier.RequestAccepted(ctx, requester, resp)
	} else {
		err = s.notifier.RequestRejected(ctx, requester, resp)
	}
	if err != nil {
		logger.Debug("Decision notification incomplete", "responseID", resp.ID, "error", err)
	}
}

func (s *reservationService) DeleteReservationRequest(ctx context.Context, actor Actor, requestID int32) error {
	logger.EnterMethod("reservationService.DeleteReservationRequest", "requestID", requestID, "actor", actor.UserID)

	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		req, err := repos.Requests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return translate(err, "request")
		}
		if err := actor.authorize(fmt.Sprintf("delete request %d", req.ID), req.OwnerID, req.RequesterID); err != nil {
			return err
		}

		if req.ResponseID != nil {
			resp, err := repos.Responses.GetByID(ctx, *req.ResponseID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("failed to load response: %w", err)
			}
			if resp != nil {
				if resp.Status == domain.RequestStatusAccepted && resp.ReservationID != nil {
					if err := repos.Reservations.Delete(ctx, *resp.ReservationID); err != nil && !errors.Is(err, repository.ErrNotFound) {
						return fmt.Errorf("failed to delete reservation: %w", err)
					}
				}
				if err := repos.Responses.Delete(ctx, resp.ID); err != nil {
					return fmt.Errorf("failed to delete response: %w", err)
				}
			}
		}

		return translate(repos.Requests.Delete(ctx, req.ID), "request")
	})
	if err != nil {
		logger.ExitMethodWithError("reservationService.DeleteReservationRequest", err, "requestID", requestID)
		return err
	}

	logger.ExitMethod("reservationService.DeleteReservationRequest", "requestID", requestID)
	return nil
}

func (s *reservationService) GetUserReservationRequests(ctx context.Context, ownerID string) ([]domain.Request, error) {
	if _, err := s.repos.Users.GetByID(ctx, ownerID); err != nil {
		return nil, translate(err, "user")
	}
	requests, err := s.repos.Requests.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].ApartmentImage = s.images.URL(requests[i].ApartmentImage)
		requests[i].RequesterPicture = s.images.URL(requests[i].RequesterPicture)
	}
	return requests, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	if _, err := s.repos.Users.GetByID(ctx, customerID); err != nil {
		return nil, translate(err, "user")
	}
	reservations, err := s.repos.Reservations.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range reservations {
		reservations[i].ApartmentImage = s.images.URL(reservations[i].ApartmentImage)
	}
	return reservations, nil
}

func (s *reservationService) GetUserResponses(ctx context.Context, userID string) ([]domain.Response, error) {
	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return nil, translate(err, "user")
	}
	responses, err := s.repos.Responses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range responses {
		responses[i].ApartmentImage = s.images.URL(responses[i].ApartmentImage)
	}
	return responses, nil
}
