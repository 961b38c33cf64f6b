package request

type CreateBooking struct {
	CourseScheduleID    int64                `json:"course_schedule_id" validate:"required"`
	PartySize           int                  `json:"party_size" validate:"required,min=1,max=50"`
	FullName            string               `json:"full_name" validate:"required,max=255"`
	Email               string               `json:"email" validate:"required,email"`
	DiscountCode        string               `json:"discount_code" validate:"omitempty,max=50"`
	SpecialRequirements []SpecialRequirement `json:"special_requirements" validate:"omitempty,max=10,dive"`
	UserID              int64                `json:"-"`
}

type SpecialRequirement struct {
	Category string `json:"category" validate:"required,oneof=accessibility medical dietary other"`
	Details  string `json:"details" validate:"required,max=1000"`
}

type CancelBooking struct {
	Reason    string `json:"reason" validate:"required,max=500"`
	Emergency bool   `json:"emergency"`
	// set by the handler
	BookingReference string `json:"-"`
	UserID           int64  `json:"-"`
	Admin            bool   `json:"-"`
}

type PaymentWebhook struct {
	GatewayTransactionID string `json:"gateway_transaction_id" validate:"required,max=255"`
	BookingReference     string `json:"booking_reference" validate:"required"`
	Outcome              string `json:"outcome" validate:"required,oneof=succeeded failed refunded"`
	Amount               string `json:"amount" validate:"omitempty,numeric"`
	PaymentMethod        string `json:"payment_method" validate:"omitempty,max=50"`
}

type ManualRefund struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Reason string `json:"reason" validate:"required,max=500"`
	// set by the handler
	BookingReference string `json:"-"`
	ActorID          int64  `json:"-"`
}

type CompleteSchedule struct {
	Attendance []Attendance `json:"attendance" validate:"dive"`
	// set by the handler
	ScheduleID int64 `json:"-"`
	ActorID    int64 `json:"-"`
}

type Attendance struct {
	BookingReference string `json:"booking_reference" validate:"required"`
	Present          bool   `json:"present"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}
