package postgres

import (
	"context"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, user_name, first_name, last_name, email, password_hash, role, profile_picture, device_token, created_on`

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.UserName, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.ProfilePicture, &u.DeviceToken, &u.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, user_name, first_name, last_name, email, password_hash, role, profile_picture)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_on`
	logger.DatabaseCall("INSERT", "users", "userName", u.UserName)
	err := r.db.QueryRowContext(ctx, query, u.ID, u.UserName, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.ProfilePicture).Scan(&u.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "userID", u.ID)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, userName))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET user_name=$1, first_name=$2, last_name=$3, email=$4, profile_picture=$5 WHERE id=$6`
	return execOne(ctx, r.db, query, u.UserName, u.FirstName, u.LastName, u.Email, u.ProfilePicture, u.ID)
}

func (r *userRepository) UpdateDeviceToken(ctx context.Context, id, token string) error {
	return execOne(ctx, r.db, `UPDATE users SET device_token=$1 WHERE id=$2`, token, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	logger.DatabaseCall("DELETE", "users", "userID", id)
	err := execOne(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
	logger.DatabaseResult("DELETE", 1, err, "userID", id)
	return err
}
