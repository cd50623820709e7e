package postgres

import (
	"context"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"

	"github.com/lib/pq"
)

type responseRepository struct {
	db DBTX
}

func NewResponseRepository(db DBTX) repository.ResponseRepository {
	return &responseRepository{db: db}
}

const responseColumns = `s.id, s.request_id, s.user_id, s.content, s.start_date, s.end_date, s.status, s.reservation_id, s.created_on`

func scanResponse(row rowScanner, extra ...any) (*domain.Response, error) {
	resp := &domain.Response{}
	var start, end time.Time
	dest := []any{&resp.ID, &resp.RequestID, &resp.UserID, &resp.Content, &start, &end, &resp.Status, &resp.ReservationID, &resp.CreatedOn}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapError(err)
	}
	resp.DateRange = formatRange(start, end)
	return resp, nil
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	query := `INSERT INTO responses (request_id, user_id, content, start_date, end_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "responses", "requestID", resp.RequestID, "status", resp.Status)
	err := r.db.QueryRowContext(ctx, query, resp.RequestID, resp.UserID, resp.Content, resp.DateRange.Start, resp.DateRange.End, resp.Status).
		Scan(&resp.ID, &resp.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "responseID", resp.ID)
	return mapError(err)
}

func (r *responseRepository) GetByID(ctx context.Context, id int32) (*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses s WHERE s.id = $1`
	return scanResponse(r.db.QueryRowContext(ctx, query, id))
}

func (r *responseRepository) SetReservation(ctx context.Context, id, reservationID int32) error {
	return execOne(ctx, r.db, `UPDATE responses SET reservation_id = $1 WHERE id = $2`, reservationID, id)
}

func (r *responseRepository) Delete(ctx context.Context, id int32) error {
	return execOne(ctx, r.db, `DELETE FROM responses WHERE id = $1`, id)
}

func (r *responseRepository) DeleteByRequests(ctx context.Context, requestIDs []int32) error {
	if len(requestIDs) == 0 {
		return nil
	}
	ids := make([]int64, len(requestIDs))
	for i, id := range requestIDs {
		ids[i] = int64(id)
	}
	return exec(ctx, r.db, `DELETE FROM responses WHERE request_id = ANY($1)`, pq.Array(ids))
}

func (r *responseRepository) DeleteByUser(ctx context.Context, userID string) error {
	return exec(ctx, r.db, `DELETE FROM responses WHERE user_id = $1`, userID)
}

func (r *responseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Response, error) {
	query := `SELECT ` + responseColumns + `, ` + firstImageKey("q.apartment_id") + `
	          FROM responses s JOIN requests q ON q.id = s.request_id
	          WHERE s.user_id = $1 ORDER BY s.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var image string
		resp, err := scanResponse(rows, &image)
		if err != nil {
			return nil, err
		}
		resp.ApartmentImage = image
		responses = append(responses, *resp)
	}
	return responses, rows.Err()
}
