package response

type Certificate struct {
	CertificateNumber string `json:"certificate_number"`
	BookingReference  string `json:"booking_reference"`
	HolderName        string `json:"holder_name"`
	CourseName        string `json:"course_name"`
	IssueDate         string `json:"issue_date"`
	ExpiryDate        string `json:"expiry_date"`
	Status            string `json:"status"`
	VerificationCode  string `json:"verification_code"`
	PDFBlob           []byte `json:"pdf_blob,omitempty"`
	AlreadyIssued     bool   `json:"already_issued"`
	Supersedes        string `json:"supersedes,omitempty"`
}

type Download struct {
	FileName      string
	Content       []byte
	DownloadCount int
}
