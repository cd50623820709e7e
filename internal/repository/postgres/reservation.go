package postgres

import (
	"context"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
)

type reservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `v.id, v.apartment_id, v.customer_id, v.response_id, v.start_date, v.end_date, v.content, v.created_on`

func scanReservation(row rowScanner, extra ...any) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var start, end time.Time
	dest := []any{&res.ID, &res.ApartmentID, &res.CustomerID, &res.ResponseID, &start, &end, &res.Content, &res.CreatedOn}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapError(err)
	}
	res.Date = formatRange(start, end)
	return res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (apartment_id, customer_id, response_id, start_date, end_date, content)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "reservations", "apartmentID", res.ApartmentID, "customerID", res.CustomerID)
	err := r.db.QueryRowContext(ctx, query, res.ApartmentID, res.CustomerID, res.ResponseID, res.Date.Start, res.Date.End, res.Content).
		Scan(&res.ID, &res.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "reservationID", res.ID)
	return mapError(err)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations v WHERE v.id = $1`
	return scanReservation(r.db.QueryRowContext(ctx, query, id))
}

func (r *reservationRepository) Delete(ctx context.Context, id int32) error {
	return execOne(ctx, r.db, `DELETE FROM reservations WHERE id = $1`, id)
}

func (r *reservationRepository) DeleteByApartment(ctx context.Context, apartmentID int32) error {
	return exec(ctx, r.db, `DELETE FROM reservations WHERE apartment_id = $1`, apartmentID)
}

func (r *reservationRepository) DeleteByCustomer(ctx context.Context, customerID string) error {
	return exec(ctx, r.db, `DELETE FROM reservations WHERE customer_id = $1`, customerID)
}

func (r *reservationRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `, ` + firstImageKey("v.apartment_id") + `
	          FROM reservations v WHERE v.customer_id = $1 ORDER BY v.start_date`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var image string
		res, err := scanReservation(rows, &image)
		if err != nil {
			return nil, err
		}
		res.ApartmentImage = image
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
