package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
)

type apartmentRepository struct {
	db DBTX
}

func NewApartmentRepository(db DBTX) repository.ApartmentRepository {
	return &apartmentRepository{db: db}
}

const apartmentColumns = `a.id, a.owner_id, a.title, a.description, a.price, a.bedrooms, a.bathrooms, a.beds, a.master_bedrooms,
	a.area, a.type_of_place, a.category_id, c.name, a.latitude, a.longitude, a.city, a.country, a.amenities, a.upload_date`

const apartmentFrom = ` FROM apartments a JOIN categories c ON c.id = a.category_id`

func scanApartment(row rowScanner) (*domain.Apartment, error) {
	a := &domain.Apartment{}
	var amenities []byte
	err := row.Scan(&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.Price, &a.Bedrooms, &a.Bathrooms, &a.Beds, &a.MasterBedrooms,
		&a.Area, &a.TypeOfPlace, &a.CategoryID, &a.CategoryName, &a.Location.Latitude, &a.Location.Longitude, &a.Location.City,
		&a.Location.Country, &amenities, &a.UploadDate)
	if err != nil {
		return nil, mapError(err)
	}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &a.Amenities); err != nil {
			return nil, fmt.Errorf("failed to decode amenities for apartment %d: %w", a.ID, err)
		}
	}
	return a, nil
}

func (r *apartmentRepository) Create(ctx context.Context, a *domain.Apartment) error {
	logger.EnterMethod("apartmentRepository.Create", "ownerID", a.OwnerID, "title", a.Title)

	amenities, err := json.Marshal(a.Amenities)
	if err != nil {
		logger.ExitMethodWithError("apartmentRepository.Create", err, "reason", "failed to marshal amenities")
		return err
	}

	query := `INSERT INTO apartments (owner_id, title, description, price, bedrooms, bathrooms, beds, master_bedrooms, area,
	          type_of_place, category_id, latitude, longitude, city, country, amenities)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id, upload_date`
	logger.DatabaseCall("INSERT", "apartments", "ownerID", a.OwnerID)
	err = r.db.QueryRowContext(ctx, query, a.OwnerID, a.Title, a.Description, a.Price, a.Bedrooms, a.Bathrooms, a.Beds, a.MasterBedrooms,
		a.Area, a.TypeOfPlace, a.CategoryID, a.Location.Latitude, a.Location.Longitude, a.Location.City, a.Location.Country, amenities).
		Scan(&a.ID, &a.UploadDate)
	logger.DatabaseResult("INSERT", 1, err, "apartmentID", a.ID)

	if err != nil {
		logger.ExitMethodWithError("apartmentRepository.Create", err, "ownerID", a.OwnerID)
		return mapError(err)
	}
	logger.ExitMethod("apartmentRepository.Create", "apartmentID", a.ID)
	return nil
}

func (r *apartmentRepository) GetByID(ctx context.Context, id int32) (*domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + apartmentFrom + ` WHERE a.id = $1`
	return scanApartment(r.db.QueryRowContext(ctx, query, id))
}

func (r *apartmentRepository) Update(ctx context.Context, a *domain.Apartment) error {
	amenities, err := json.Marshal(a.Amenities)
	if err != nil {
		return err
	}
	query := `UPDATE apartments SET title=$1, description=$2, price=$3, bedrooms=$4, bathrooms=$5, beds=$6, master_bedrooms=$7,
	          area=$8, type_of_place=$9, category_id=$10, latitude=$11, longitude=$12, city=$13, country=$14, amenities=$15
	          WHERE id=$16`
	return execOne(ctx, r.db, query, a.Title, a.Description, a.Price, a.Bedrooms, a.Bathrooms, a.Beds, a.MasterBedrooms,
		a.Area, a.TypeOfPlace, a.CategoryID, a.Location.Latitude, a.Location.Longitude, a.Location.City, a.Location.Country,
		amenities, a.ID)
}

func (r *apartmentRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "apartments", "apartmentID", id)
	err := execOne(ctx, r.db, `DELETE FROM apartments WHERE id = $1`, id)
	logger.DatabaseResult("DELETE", 1, err, "apartmentID", id)
	return err
}

func (r *apartmentRepository) List(ctx context.Context) ([]domain.Apartment, error) {
	return r.list(ctx, `SELECT `+apartmentColumns+apartmentFrom+` ORDER BY a.upload_date DESC`)
}

func (r *apartmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Apartment, error) {
	return r.list(ctx, `SELECT `+apartmentColumns+apartmentFrom+` WHERE a.owner_id = $1 ORDER BY a.upload_date DESC`, ownerID)
}

func (r *apartmentRepository) ListSaved(ctx context.Context, userID string) ([]domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + apartmentFrom + `
	          JOIN wishlist_entries e ON e.apartment_id = a.id
	          JOIN wishlists w ON w.id = e.wishlist_id
	          WHERE w.user_id = $1 ORDER BY e.saved_on DESC`
	return r.list(ctx, query, userID)
}

func (r *apartmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Apartment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []domain.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, *a)
	}
	return apartments, rows.Err()
}

func (r *apartmentRepository) GetOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{Name: name}
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `INSERT INTO categories (name) VALUES ($1)
	          ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}
