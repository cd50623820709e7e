package domain

import "time"

type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

// Amenities is persisted as a single JSONB column.
type Amenities struct {
	Elevator        bool  `json:"elevator"`
	Generator       bool  `json:"generator"`
	Garden          bool  `json:"garden"`
	Pool            bool  `json:"pool"`
	Guard           bool  `json:"guard"`
	Kitchen         bool  `json:"kitchen"`
	BbqGrill        bool  `json:"bbq_grill"`
	HotTub          bool  `json:"hot_tub"`
	Wifi            bool  `json:"wifi"`
	WorkSpace       bool  `json:"work_space"`
	IndoorFireplace bool  `json:"indoor_fireplace"`
	SmokingAllowed  bool  `json:"smoking_allowed"`
	Gym             bool  `json:"gym"`
	AirConditioner  bool  `json:"air_conditioner"`
	WaterContainers int32 `json:"water_containers"`
	Tvs             int32 `json:"tvs"`
	Parking         int32 `json:"parking"`
}

type Apartment struct {
	ID             int32     `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Owner          *User     `json:"owner,omitempty"` // Populated when fetching apartment details
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          int32     `json:"price"`
	Bedrooms       int32     `json:"bedrooms"`
	Bathrooms      int32     `json:"bathrooms"`
	Beds           int32     `json:"beds"`
	MasterBedrooms int32     `json:"master_bedrooms"`
	Area           float64   `json:"area"`
	TypeOfPlace    string    `json:"type_of_place"`
	CategoryID     int32     `json:"category_id"`
	CategoryName   string    `json:"category_name"`
	Location       Location  `json:"location"`
	Amenities      Amenities `json:"amenities"`
	Images         []string  `json:"images,omitempty"` // Download URLs, populated for read models
	UploadDate     time.Time `json:"upload_date"`
}

type Image struct {
	ID          int32     `json:"id"`
	ApartmentID int32     `json:"apartment_id"`
	Key         string    `json:"key"`
	CreatedOn   time.Time `json:"created_on"`
}

type Review struct {
	ID          int32     `json:"id"`
	ApartmentID int32     `json:"apartment_id"`
	ReviewerID  string    `json:"reviewer_id"`
	Reviewer    *User     `json:"reviewer,omitempty"` // Populated when listing
	Content     string    `json:"content"`
	Value       float64   `json:"value"`
	DateRated   time.Time `json:"date_rated"`
}
