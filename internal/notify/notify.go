package notify

import (
	"context"
	"errors"
	"fmt"

	"homestay-backend/internal/config"
	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/utils"
)

// Message is a channel-neutral notification.
type Message struct {
	Subject string
	Body    string
	Data    map[string]string
}

// Sender delivers a message to one user over a single channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, to *domain.User, msg Message) error
}

// Notifier tells users about reservation lifecycle events.
type Notifier interface {
	RequestReceived(ctx context.Context, owner *domain.User, req *domain.Request) error
	RequestAccepted(ctx context.Context, requester *domain.User, resp *domain.Response) error
	RequestRejected(ctx context.Context, requester *domain.User, resp *domain.Response) error
}

// Dispatcher fans every event out to all configured senders. A Dispatcher
// without senders is a no-op.
type Dispatcher struct {
	senders []Sender
}

func NewDispatcher(senders ...Sender) *Dispatcher {
	return &Dispatcher{senders: senders}
}

func NewNoop() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) RequestReceived(ctx context.Context, owner *domain.User, req *domain.Request) error {
	data := map[string]string{
		"type":         "RESERVATION_REQUEST",
		"request_id":   fmt.Sprintf("%d", req.ID),
		"apartment_id": fmt.Sprintf("%d", req.ApartmentID),
		"date_range":   req.DateRange.String(),
	}
	if nights, err := utils.StayLength(req.DateRange); err == nil {
		data["nights"] = fmt.Sprintf("%d", nights)
	}
	return d.dispatch(ctx, owner, Message{
		Subject: "New reservation request",
		Body:    req.Content,
		Data:    data,
	})
}

func (d *Dispatcher) RequestAccepted(ctx context.Context, requester *domain.User, resp *domain.Response) error {
	return d.dispatch(ctx, requester, responseMessage("Reservation request accepted", resp))
}

func (d *Dispatcher) RequestRejected(ctx context.Context, requester *domain.User, resp *domain.Response) error {
	return d.dispatch(ctx, requester, responseMessage("Reservation request rejected", resp))
}

func responseMessage(subject string, resp *domain.Response) Message {
	data := map[string]string{
		"type":        "RESERVATION_" + string(resp.Status),
		"request_id":  fmt.Sprintf("%d", resp.RequestID),
		"response_id": fmt.Sprintf("%d", resp.ID),
		"date_range":  resp.DateRange.String(),
	}
	if resp.ReservationID != nil {
		data["reservation_id"] = fmt.Sprintf("%d", *resp.ReservationID)
	}
	return Message{Subject: subject, Body: resp.Content, Data: data}
}

func (d *Dispatcher) dispatch(ctx context.Context, to *domain.User, msg Message) error {
	if to == nil {
		return nil
	}
	var errs []error
	for _, s := range d.senders {
		if err := s.Send(ctx, to, msg); err != nil {
			logger.Warn("Notification delivery failed", "channel", s.Name(), "userID", to.ID, "subject", msg.Subject, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// FromConfig builds a Dispatcher with the channels enabled in cfg. With no
// channel enabled it behaves like NewNoop.
func FromConfig(ctx context.Context, cfg config.NotificationConfig) (*Dispatcher, error) {
	var senders []Sender
	if cfg.Email.Enabled {
		senders = append(senders, NewEmailSender(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName))
	}
	if cfg.Push.Enabled {
		push, err := NewPushSender(ctx, cfg.Push.ProjectID, cfg.Push.CredentialsFile)
		if err != nil {
			return nil, err
		}
		senders = append(senders, push)
	}
	for _, s := range senders {
		logger.Info("Notification channel enabled", "channel", s.Name())
	}
	return NewDispatcher(senders...), nil
}
