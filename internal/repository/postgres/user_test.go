package postgres

import (
	"context"
	"testing"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		ID:           "8a4a5f1e-3c55-4a4e-b5b6-1f2a0f3a9e11",
		UserName:     "janedoe",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Role:         domain.UserRoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, "janedoe", "Jane", "Doe", "jane@example.com", "hash", domain.UserRoleCustomer, nil).
			WillReturnRows(sqlmock.NewRows([]string{"created_on"}).AddRow(time.Now()))

		assert.NoError(t, repo.Create(ctx, user))
		assert.False(t, user.CreatedOn.IsZero())
	})

	t.Run("Duplicate user name", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_user_name_key"})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestUserRepository_GetByUserName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	columns := []string{"id", "user_name", "first_name", "last_name", "email", "password_hash", "role", "profile_picture", "device_token", "created_on"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE user_name = \\$1").
			WithArgs("janedoe").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("u-1", "janedoe", "Jane", "Doe", "jane@example.com", "hash", "CUSTOMER", "profiles/p.png", nil, time.Now()))

		u, err := repo.GetByUserName(context.Background(), "janedoe")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", u.FullName())
		require.NotNil(t, u.ProfilePicture)
		assert.Equal(t, "profiles/p.png", *u.ProfilePicture)
		assert.Nil(t, u.DeviceToken)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE user_name = \\$1").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByUserName(context.Background(), "ghost")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestWishListRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewWishListRepository(db)
	ctx := context.Background()

	t.Run("Already saved", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO wishlist_entries").
			WithArgs(int32(1), int32(3)).
			WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.AddEntry(ctx, 1, 3), repository.ErrDuplicate)
	})

	t.Run("Remove missing entry", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM wishlist_entries WHERE wishlist_id = \\$1 AND apartment_id = \\$2").
			WithArgs(int32(1), int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.RemoveEntry(ctx, 1, 4), repository.ErrNotFound)
	})

	t.Run("Delete by user removes entries first", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM wishlist_entries WHERE wishlist_id IN").
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM wishlists WHERE user_id = \\$1").
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByUser(ctx, "u-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
