package fixtures

import (
	"time"

	"github.com/salonkit/refunds.api.salonkit.io/models"
)

var RefundRequestKind = "refund-request#refund-request"

// GetSalonResource returns a salon directory resource with a payment taken
// daysAgo days before now
func GetSalonResource(daysAgo int) *models.SalonResource {
	return &models.SalonResource{
		ID:         "salon-10000025",
		Name:       "Shear Bliss",
		OwnerName:  "Dana Martin",
		OwnerEmail: "dana@shearbliss.example",
		LastPayment: models.SalonLastPayment{
			Date:      time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
			Amount:    "99.00",
			Method:    "paypal",
			CaptureID: "2GG903861U729173L",
		},
	}
}

// GetRefundRequestDB returns a stored refund request with the given status
func GetRefundRequestDB(status string) *models.RefundRequestResourceDB {
	requestedAt := time.Now().Add(-2 * time.Hour).Truncate(time.Millisecond)
	return &models.RefundRequestResourceDB{
		ID: "b8f6c211-1b3f-4f4a-9d66-4e33f0e9f3d1",
		Data: models.RefundRequestDataDB{
			SalonID:          "salon-10000025",
			SalonName:        "Shear Bliss",
			OwnerName:        "Dana Martin",
			OwnerEmail:       "dana@shearbliss.example",
			Amount:           "99.00",
			PaymentDate:      time.Now().Add(-5 * 24 * time.Hour),
			PaymentMethod:    "paypal",
			PaymentCaptureID: "2GG903861U729173L",
			Reason:           "Service no longer required",
			Status:           status,
			RequestedAt:      requestedAt,
			Kind:             RefundRequestKind,
		},
	}
}

// GetIncomingRefundRequest returns a valid create refund request body
func GetIncomingRefundRequest() *models.IncomingRefundRequest {
	return &models.IncomingRefundRequest{
		SalonID:       "salon-10000025",
		Reason:        "Service no longer required",
		ConfirmEmail:  "dana@shearbliss.example",
		AgreedToTerms: true,
	}
}
