package models

import "time"

// RefundRequestResourceDB contains all refund request details to be stored in the DB
type RefundRequestResourceDB struct {
	ID               string              `bson:"_id"`
	ExternalRefundID string              `bson:"external_refund_id,omitempty"`
	Data             RefundRequestDataDB `bson:"data"`
}

// RefundRequestDataDB is the data block of a stored refund request. Salon and
// payment fields are copied from the salon record at creation time and never
// rewritten afterwards.
type RefundRequestDataDB struct {
	SalonID          string     `bson:"salon_id"`
	SalonName        string     `bson:"salon_name"`
	OwnerName        string     `bson:"owner_name"`
	OwnerEmail       string     `bson:"owner_email"`
	Amount           string     `bson:"amount"`
	PaymentDate      time.Time  `bson:"payment_date"`
	PaymentMethod    string     `bson:"payment_method"`
	PaymentCaptureID string     `bson:"payment_capture_id"`
	Reason           string     `bson:"reason"`
	Status           string     `bson:"status"`
	RequestedAt      time.Time  `bson:"requested_at"`
	VerifiedAt       *time.Time `bson:"verified_at,omitempty"`
	ProcessedAt      *time.Time `bson:"processed_at,omitempty"`
	ProcessedBy      string     `bson:"processed_by,omitempty"`
	RejectionReason  string     `bson:"rejection_reason,omitempty"`
	Kind             string     `bson:"kind"`
}
