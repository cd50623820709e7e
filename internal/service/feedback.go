package service

import (
	"context"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/validation"
)

type feedbackService struct {
	repos     repository.Repositories
	validator *validation.Validator
}

func NewFeedbackService(repos repository.Repositories, validator *validation.Validator) FeedbackService {
	return &feedbackService{repos: repos, validator: validator}
}

func (s *feedbackService) SendFeedback(ctx context.Context, writerID string, in FeedbackInput) (*domain.Feedback, error) {
	if err := validate(s.validator, in); err != nil {
		return nil, err
	}
	writer, err := s.repos.Users.GetByID(ctx, writerID)
	if err != nil {
		return nil, translate(err, "user")
	}

	fb := &domain.Feedback{WriterID: writer.ID, Value: in.Value, Content: in.Content, Writer: writer}
	if err := s.repos.Feedbacks.Create(ctx, fb); err != nil {
		return nil, translate(err, "feedback")
	}
	return fb, nil
}

func (s *feedbackService) ListFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	return s.repos.Feedbacks.List(ctx)
}

func (s *feedbackService) DeleteFeedback(ctx context.Context, actor Actor, id int32) error {
	fb, err := s.repos.Feedbacks.GetByID(ctx, id)
	if err != nil {
		return translate(err, "feedback")
	}
	if err := actor.authorize(fmt.Sprintf("delete feedback %d", id), fb.WriterID); err != nil {
		return err
	}
	return translate(s.repos.Feedbacks.Delete(ctx, id), "feedback")
}
