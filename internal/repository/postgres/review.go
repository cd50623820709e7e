package postgres

import (
	"context"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type reviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (apartment_id, reviewer_id, content, value) VALUES ($1, $2, $3, $4) RETURNING id, date_rated`
	return mapError(r.db.QueryRowContext(ctx, query, rv.ApartmentID, rv.ReviewerID, rv.Content, rv.Value).Scan(&rv.ID, &rv.DateRated))
}

func (r *reviewRepository) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	query := `SELECT id, apartment_id, reviewer_id, content, value, date_rated FROM reviews WHERE id = $1`
	rv := &domain.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rv.ID, &rv.ApartmentID, &rv.ReviewerID, &rv.Content, &rv.Value, &rv.DateRated)
	if err != nil {
		return nil, mapError(err)
	}
	return rv, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int32) error {
	return execOne(ctx, r.db, `DELETE FROM reviews WHERE id = $1`, id)
}

func (r *reviewRepository) DeleteByApartment(ctx context.Context, apartmentID int32) error {
	return exec(ctx, r.db, `DELETE FROM reviews WHERE apartment_id = $1`, apartmentID)
}

func (r *reviewRepository) DeleteByReviewer(ctx context.Context, reviewerID string) error {
	return exec(ctx, r.db, `DELETE FROM reviews WHERE reviewer_id = $1`, reviewerID)
}

func (r *reviewRepository) ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Review, error) {
	query := `SELECT rv.id, rv.apartment_id, rv.reviewer_id, rv.content, rv.value, rv.date_rated,
	                 u.user_name, u.first_name, u.last_name, u.profile_picture
	          FROM reviews rv JOIN users u ON u.id = rv.reviewer_id
	          WHERE rv.apartment_id = $1 ORDER BY rv.date_rated DESC`
	rows, err := r.db.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		u := &domain.User{}
		if err := rows.Scan(&rv.ID, &rv.ApartmentID, &rv.ReviewerID, &rv.Content, &rv.Value, &rv.DateRated,
			&u.UserName, &u.FirstName, &u.LastName, &u.ProfilePicture); err != nil {
			return nil, err
		}
		u.ID = rv.ReviewerID
		rv.Reviewer = u
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
