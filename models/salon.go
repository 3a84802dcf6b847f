package models

import "time"

// SalonResource is the salon record resolved from the Salon Directory API
type SalonResource struct {
	ID          string           `json:"id"           validate:"required"`
	Name        string           `json:"name"         validate:"required"`
	OwnerName   string           `json:"owner_name"`
	OwnerEmail  string           `json:"owner_email"  validate:"required,email"`
	LastPayment SalonLastPayment `json:"last_payment" validate:"required"`
}

// SalonLastPayment is the most recent payment taken for a salon subscription.
// CaptureID is the payment provider's reference for the original charge and is
// the target of any refund issued against it.
type SalonLastPayment struct {
	Date      time.Time `json:"date"       validate:"required"`
	Amount    string    `json:"amount"     validate:"required"`
	Method    string    `json:"method"     validate:"required"`
	CaptureID string    `json:"capture_id" validate:"required"`
}
