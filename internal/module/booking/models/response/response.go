package response

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email_user"`
	Role      string `json:"role"`
}

type BookingCreated struct {
	BookingReference string `json:"booking_reference"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"payment_status"`
	PaymentAmount    string `json:"payment_amount"`
	PaymentExpiry    string `json:"payment_expiry,omitempty"`
}

type Booking struct {
	BookingReference     string `json:"booking_reference"`
	CourseScheduleID     int64  `json:"course_schedule_id"`
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	PartySize            int    `json:"party_size"`
	Status               string `json:"status"`
	PaymentStatus        string `json:"payment_status"`
	PaymentAmount        string `json:"payment_amount"`
	DiscountApplied      string `json:"discount_applied"`
	RefundAmount         string `json:"refund_amount"`
	RefundReviewRequired bool   `json:"refund_review_required"`
	CertificateIssued    bool   `json:"certificate_issued"`
	BookingDate          string `json:"booking_date"`
	CancelledAt          string `json:"cancelled_at,omitempty"`
}

type Cancellation struct {
	BookingReference string `json:"booking_reference"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"payment_status"`
	RefundTier       string `json:"refund_tier"`
	RefundAmount     string `json:"refund_amount"`
	RefundReference  string `json:"refund_reference,omitempty"`
	ReviewRequired   bool   `json:"review_required"`
}

type Refund struct {
	BookingReference string `json:"booking_reference"`
	RefundReference  string `json:"refund_reference"`
	RefundAmount     string `json:"refund_amount"`
	PaymentStatus    string `json:"payment_status"`
}

// WebhookResult tells the gateway what happened to a delivery. Every result
// is acknowledged with 200.
type WebhookResult struct {
	Result           string `json:"result"`
	BookingReference string `json:"booking_reference"`
	PaymentStatus    string `json:"payment_status,omitempty"`
	Reference        string `json:"reference,omitempty"`
}

type Completion struct {
	ScheduleID int64 `json:"schedule_id"`
	Completed  int   `json:"completed"`
	NoShow     int   `json:"no_show"`
	Cancelled  int   `json:"cancelled"`
}
