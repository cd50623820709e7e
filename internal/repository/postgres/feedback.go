package postgres

import (
	"context"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type feedbackRepository struct {
	db DBTX
}

func NewFeedbackRepository(db DBTX) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `INSERT INTO feedbacks (writer_id, value, content) VALUES ($1, $2, $3) RETURNING id, created_on`
	return mapError(r.db.QueryRowContext(ctx, query, fb.WriterID, fb.Value, fb.Content).Scan(&fb.ID, &fb.CreatedOn))
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int32) (*domain.Feedback, error) {
	query := `SELECT id, writer_id, value, content, created_on FROM feedbacks WHERE id = $1`
	fb := &domain.Feedback{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&fb.ID, &fb.WriterID, &fb.Value, &fb.Content, &fb.CreatedOn); err != nil {
		return nil, mapError(err)
	}
	return fb, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int32) error {
	return execOne(ctx, r.db, `DELETE FROM feedbacks WHERE id = $1`, id)
}

func (r *feedbackRepository) DeleteByWriter(ctx context.Context, writerID string) error {
	return exec(ctx, r.db, `DELETE FROM feedbacks WHERE writer_id = $1`, writerID)
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	query := `SELECT f.id, f.writer_id, f.value, f.content, f.created_on, u.user_name, u.first_name, u.last_name
	          FROM feedbacks f JOIN users u ON u.id = f.writer_id ORDER BY f.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		u := &domain.User{}
		if err := rows.Scan(&fb.ID, &fb.WriterID, &fb.Value, &fb.Content, &fb.CreatedOn, &u.UserName, &u.FirstName, &u.LastName); err != nil {
			return nil, err
		}
		u.ID = fb.WriterID
		fb.Writer = u
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}
