package request

type IssueCertificate struct {
	BookingReference string `json:"booking_reference" validate:"required"`
	// HolderName overrides the booking name, used to correct typos on reissue.
	HolderName string `json:"holder_name" validate:"omitempty,max=255"`
	ActorID    int64  `json:"-"`
}

type RevokeCertificate struct {
	Reason            string `json:"reason" validate:"required,max=500"`
	CertificateNumber string `json:"-"`
	ActorID           int64  `json:"-"`
}

type ReissueCertificate struct {
	Reason            string `json:"reason" validate:"required,max=500"`
	HolderName        string `json:"holder_name" validate:"omitempty,max=255"`
	CertificateNumber string `json:"-"`
	ActorID           int64  `json:"-"`
}

type CertificateEmailed struct {
	CertificateNumber string `json:"certificate_number" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}
