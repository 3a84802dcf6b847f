package models

import "time"

// IncomingRefundRequest is the data received in the body of the incoming request
type IncomingRefundRequest struct {
	SalonID       string `json:"salon_id" validate:"required"`
	Reason        string `json:"reason"`
	ConfirmEmail  string `json:"confirm_email"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}

// RejectRefundRequest is the body of an operator reject action
type RejectRefundRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RefundRequestResourceRest is the public facing refund request returned in responses
type RefundRequestResourceRest struct {
	ID               string     `json:"id"`
	SalonID          string     `json:"salon_id"`
	SalonName        string     `json:"salon_name"`
	OwnerName        string     `json:"owner_name"`
	OwnerEmail       string     `json:"owner_email"`
	Amount           string     `json:"amount"`
	PaymentDate      time.Time  `json:"payment_date"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentCaptureID string     `json:"payment_capture_id"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	DaysFromPayment  int        `json:"days_from_payment"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	ProcessedBy      string     `json:"processed_by,omitempty"`
	ExternalRefundID string     `json:"external_refund_id,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	Kind             string     `json:"kind"`
}

// EligibilityRest describes whether a salon's last payment is still refundable
type EligibilityRest struct {
	Eligible        bool      `json:"eligible"`
	DaysFromPayment int       `json:"days_from_payment"`
	DaysLeft        int       `json:"days_left"`
	PaymentDate     time.Time `json:"payment_date"`
}

// RefundSummaryRest holds admin-visible aggregates, recomputed on each read
type RefundSummaryRest struct {
	StatusCounts  map[string]int `json:"status_counts"`
	ApprovedTotal string         `json:"approved_total"`
	Total         int            `json:"total"`
}

// RefundRequestListRest wraps a filtered list of refund requests
type RefundRequestListRest struct {
	Total    int                         `json:"total"`
	Requests []RefundRequestResourceRest `json:"requests"`
}
