package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID             string    `json:"id"`
	UserName       string    `json:"user_name"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           UserRole  `json:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty"` // storage key
	ImageSrc       string    `json:"image_src,omitempty"`       // Populated for read models
	DeviceToken    *string   `json:"-"`
	CreatedOn      time.Time `json:"created_on"`
}

// FullName is the display name used in request and reservation messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// WishList is the per-user container of saved apartments, created at registration.
type WishList struct {
	ID     int32  `json:"id"`
	UserID string `json:"user_id"`
}

type WishListEntry struct {
	WishListID  int32     `json:"wishlist_id"`
	ApartmentID int32     `json:"apartment_id"`
	SavedOn     time.Time `json:"saved_on"`
}

type Feedback struct {
	ID        int32     `json:"id"`
	WriterID  string    `json:"writer_id"`
	Value     int32     `json:"value"`
	Content   string    `json:"content"`
	Writer    *User     `json:"writer,omitempty"` // Populated when listing
	CreatedOn time.Time `json:"created_on"`
}
