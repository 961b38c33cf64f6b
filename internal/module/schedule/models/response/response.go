package response

type Schedule struct {
	ID              int64  `json:"id"`
	CourseID        int64  `json:"course_id"`
	CourseName      string `json:"course_name"`
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	CurrentCapacity int    `json:"current_capacity"`
	MaxCapacity     int    `json:"max_capacity"`
	SeatsAvailable  int    `json:"seats_available"`
	Price           string `json:"price"`
}

