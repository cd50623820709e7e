package postgres

import (
	"context"
	"fmt"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
)

const dateLayout = "2006-01-02"

func formatRange(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: start.Format(dateLayout), End: end.Format(dateLayout)}
}

// firstImageKey selects the oldest image key of the apartment in column col.
func firstImageKey(col string) string {
	return fmt.Sprintf(`COALESCE((SELECT i.key FROM images i WHERE i.apartment_id = %s ORDER BY i.id LIMIT 1), '')`, col)
}

type requestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `r.id, r.apartment_id, r.requester_id, r.owner_id, r.start_date, r.end_date, r.content, r.status, r.response_id, r.created_on`

func scanRequest(row rowScanner, extra ...any) (*domain.Request, error) {
	req := &domain.Request{}
	var start, end time.Time
	dest := []any{&req.ID, &req.ApartmentID, &req.RequesterID, &req.OwnerID, &start, &end, &req.Content, &req.Status, &req.ResponseID, &req.CreatedOn}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapError(err)
	}
	req.DateRange = formatRange(start, end)
	return req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `INSERT INTO requests (apartment_id, requester_id, owner_id, start_date, end_date, content, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "requests", "apartmentID", req.ApartmentID, "requesterID", req.RequesterID)
	err := r.db.QueryRowContext(ctx, query, req.ApartmentID, req.RequesterID, req.OwnerID, req.DateRange.Start, req.DateRange.End, req.Content, req.Status).
		Scan(&req.ID, &req.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "requestID", req.ID)
	return mapError(err)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests r WHERE r.id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *requestRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests r WHERE r.id = $1 FOR UPDATE`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int32, status domain.RequestStatus) error {
	logger.DatabaseCall("UPDATE", "requests", "requestID", id, "status", status)
	err := execOne(ctx, r.db, `UPDATE requests SET status = $1 WHERE id = $2`, status, id)
	logger.DatabaseResult("UPDATE", 1, err, "requestID", id)
	return err
}

func (r *requestRepository) SetResponse(ctx context.Context, id, responseID int32) error {
	return execOne(ctx, r.db, `UPDATE requests SET response_id = $1 WHERE id = $2`, responseID, id)
}

func (r *requestRepository) Delete(ctx context.Context, id int32) error {
	return execOne(ctx, r.db, `DELETE FROM requests WHERE id = $1`, id)
}

func (r *requestRepository) DeleteByApartment(ctx context.Context, apartmentID int32) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `DELETE FROM requests WHERE apartment_id = $1 RETURNING id`, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *requestRepository) DeleteByRequester(ctx context.Context, userID string) error {
	return exec(ctx, r.db, `DELETE FROM requests WHERE requester_id = $1`, userID)
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + `, ` + firstImageKey("r.apartment_id") + `, COALESCE(u.profile_picture, '')
	          FROM requests r JOIN users u ON u.id = r.requester_id
	          WHERE r.owner_id = $1 ORDER BY r.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var image, picture string
		req, err := scanRequest(rows, &image, &picture)
		if err != nil {
			return nil, err
		}
		req.ApartmentImage = image
		req.RequesterPicture = picture
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *requestRepository) ListStalePending(ctx context.Context, before string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests r WHERE r.status = $1 AND r.start_date < $2 ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, query, domain.RequestStatusPending, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
