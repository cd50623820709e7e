package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// DateRange holds inclusive yyyy-mm-dd calendar dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (d DateRange) String() string {
	return d.Start + " to " + d.End
}

// Request is a tenant's inquiry. ResponseID stays nil while the request is pending.
type Request struct {
	ID               int32         `json:"id"`
	ApartmentID      int32         `json:"apartment_id"`
	RequesterID      string        `json:"requester_id"`
	OwnerID          string        `json:"owner_id"`
	DateRange        DateRange     `json:"date_range"`
	Content          string        `json:"content"`
	Status           RequestStatus `json:"status"`
	ResponseID       *int32        `json:"response_id,omitempty"`
	ApartmentImage   string        `json:"apartment_image,omitempty"`   // Populated for read models
	RequesterPicture string        `json:"requester_picture,omitempty"` // Populated for read models
	CreatedOn        time.Time     `json:"created_on"`
}

func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Response is the owner's decision. ReservationID is set only for accepted requests.
type Response struct {
	ID             int32         `json:"id"`
	RequestID      int32         `json:"request_id"`
	UserID         string        `json:"user_id"` // requester, the recipient of the decision
	Content        string        `json:"content"`
	DateRange      DateRange     `json:"date_range"`
	Status         RequestStatus `json:"status"`
	ReservationID  *int32        `json:"reservation_id,omitempty"`
	ApartmentImage string        `json:"apartment_image,omitempty"`
	CreatedOn      time.Time     `json:"created_on"`
}

type Reservation struct {
	ID             int32     `json:"id"`
	ApartmentID    int32     `json:"apartment_id"`
	CustomerID     string    `json:"customer_id"`
	ResponseID     int32     `json:"response_id"`
	Date           DateRange `json:"date"`
	Content        string    `json:"content"`
	ApartmentImage string    `json:"apartment_image,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}
