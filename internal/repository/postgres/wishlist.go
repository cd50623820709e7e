package postgres

import (
	"context"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type wishListRepository struct {
	db DBTX
}

func NewWishListRepository(db DBTX) repository.WishListRepository {
	return &wishListRepository{db: db}
}

func (r *wishListRepository) Create(ctx context.Context, list *domain.WishList) error {
	query := `INSERT INTO wishlists (user_id) VALUES ($1) RETURNING id`
	return mapError(r.db.QueryRowContext(ctx, query, list.UserID).Scan(&list.ID))
}

func (r *wishListRepository) GetByUser(ctx context.Context, userID string) (*domain.WishList, error) {
	list := &domain.WishList{}
	err := r.db.QueryRowContext(ctx, `SELECT id, user_id FROM wishlists WHERE user_id = $1`, userID).Scan(&list.ID, &list.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// AddEntry returns repository.ErrDuplicate when the apartment is already saved.
func (r *wishListRepository) AddEntry(ctx context.Context, wishListID, apartmentID int32) error {
	return exec(ctx, r.db, `INSERT INTO wishlist_entries (wishlist_id, apartment_id) VALUES ($1, $2)`, wishListID, apartmentID)
}

func (r *wishListRepository) RemoveEntry(ctx context.Context, wishListID, apartmentID int32) error {
	return execOne(ctx, r.db, `DELETE FROM wishlist_entries WHERE wishlist_id = $1 AND apartment_id = $2`, wishListID, apartmentID)
}

func (r *wishListRepository) DeleteEntriesByApartment(ctx context.Context, apartmentID int32) error {
	return exec(ctx, r.db, `DELETE FROM wishlist_entries WHERE apartment_id = $1`, apartmentID)
}

func (r *wishListRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := exec(ctx, r.db, `DELETE FROM wishlist_entries WHERE wishlist_id IN (SELECT id FROM wishlists WHERE user_id = $1)`, userID); err != nil {
		return err
	}
	return exec(ctx, r.db, `DELETE FROM wishlists WHERE user_id = $1`, userID)
}
