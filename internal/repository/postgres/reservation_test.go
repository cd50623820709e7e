package postgres

import (
	"context"
	"testing"
	"time"

	"homestay-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)

	res := &domain.Reservation{
		ApartmentID: 3,
		CustomerID:  "requester-1",
		ResponseID:  21,
		Date:        domain.DateRange{Start: "2024-05-01", End: "2024-05-04"},
		Content:     "Dear guest",
	}
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int32(3), "requester-1", int32(21), "2024-05-01", "2024-05-04", "Dear guest").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(31, time.Now()))

	require.NoError(t, repo.Create(context.Background(), res))
	assert.Equal(t, int32(31), res.ID)
}

func TestReservationRepository_ListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "apartment_id", "customer_id", "response_id", "start_date", "end_date", "content", "created_on", "image"}).
		AddRow(31, 3, "requester-1", 21, start, end, "Dear guest", time.Now(), "apartments/a.jpg")
	mock.ExpectQuery("SELECT (.+) FROM reservations v WHERE v.customer_id = \\$1").
		WithArgs("requester-1").
		WillReturnRows(rows)

	list, err := repo.ListByCustomer(context.Background(), "requester-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "requester-1", list[0].CustomerID)
	assert.Equal(t, "2024-05-01 to 2024-05-04", list[0].Date.String())
	assert.Equal(t, "apartments/a.jpg", list[0].ApartmentImage)
}

func TestResponseRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewResponseRepository(db)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "request_id", "user_id", "content", "start_date", "end_date", "status", "reservation_id", "created_on", "image"}).
		AddRow(21, 11, "requester-1", "Owner Bob Ross has rejected", day, day, "REJECTED", nil, time.Now(), "")
	mock.ExpectQuery("SELECT (.+) FROM responses s JOIN requests q").
		WithArgs("requester-1").
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "requester-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RequestStatusRejected, list[0].Status)
	assert.Nil(t, list[0].ReservationID)
}
