package postgres

import (
	"context"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type imageRepository struct {
	db DBTX
}

func NewImageRepository(db DBTX) repository.ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, img *domain.Image) error {
	query := `INSERT INTO images (apartment_id, key) VALUES ($1, $2) RETURNING id, created_on`
	return mapError(r.db.QueryRowContext(ctx, query, img.ApartmentID, img.Key).Scan(&img.ID, &img.CreatedOn))
}

func (r *imageRepository) ListByApartment(ctx context.Context, apartmentID int32) ([]domain.Image, error) {
	query := `SELECT id, apartment_id, key, created_on FROM images WHERE apartment_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.ApartmentID, &img.Key, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *imageRepository) FirstByApartment(ctx context.Context, apartmentID int32) (*domain.Image, error) {
	img := &domain.Image{}
	query := `SELECT id, apartment_id, key, created_on FROM images WHERE apartment_id = $1 ORDER BY id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, apartmentID).Scan(&img.ID, &img.ApartmentID, &img.Key, &img.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return img, nil
}

func (r *imageRepository) DeleteByApartment(ctx context.Context, apartmentID int32) ([]string, error) {
	return r.keys(ctx, `DELETE FROM images WHERE apartment_id = $1 RETURNING key`, apartmentID)
}

func (r *imageRepository) ListKeys(ctx context.Context) ([]string, error) {
	return r.keys(ctx, `SELECT key FROM images`)
}

func (r *imageRepository) keys(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
