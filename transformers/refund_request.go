package transformers

import (
	"time"

	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// RefundRequestTransformer transforms refund request data between rest and
// database models
type RefundRequestTransformer struct{}

// TransformToDB transforms a refund request rest model into its database model
func (rt RefundRequestTransformer) TransformToDB(rest models.RefundRequestResourceRest) models.RefundRequestResourceDB {
	return models.RefundRequestResourceDB{
		ID:               rest.ID,
		ExternalRefundID: rest.ExternalRefundID,
		Data: models.RefundRequestDataDB{
			SalonID:          rest.SalonID,
			SalonName:        rest.SalonName,
			OwnerName:        rest.OwnerName,
			OwnerEmail:       rest.OwnerEmail,
			Amount:           rest.Amount,
			PaymentDate:      rest.PaymentDate,
			PaymentMethod:    rest.PaymentMethod,
			PaymentCaptureID: rest.PaymentCaptureID,
			Reason:           rest.Reason,
			Status:           rest.Status,
			RequestedAt:      rest.RequestedAt,
			VerifiedAt:       rest.VerifiedAt,
			ProcessedAt:      rest.ProcessedAt,
			ProcessedBy:      rest.ProcessedBy,
			RejectionReason:  rest.RejectionReason,
			Kind:             rest.Kind,
		},
	}
}

// TransformToRest transforms a refund request database model into its rest
// model. days_from_payment is recomputed from payment_date on every read so
// the derived value can never disagree with the stored date.
func (rt RefundRequestTransformer) TransformToRest(dbResource models.RefundRequestResourceDB) models.RefundRequestResourceRest {
	return models.RefundRequestResourceRest{
		ID:               dbResource.ID,
		SalonID:          dbResource.Data.SalonID,
		SalonName:        dbResource.Data.SalonName,
		OwnerName:        dbResource.Data.OwnerName,
		OwnerEmail:       dbResource.Data.OwnerEmail,
		Amount:           dbResource.Data.Amount,
		PaymentDate:      dbResource.Data.PaymentDate,
		PaymentMethod:    dbResource.Data.PaymentMethod,
		PaymentCaptureID: dbResource.Data.PaymentCaptureID,
		Reason:           dbResource.Data.Reason,
		Status:           dbResource.Data.Status,
		RequestedAt:      dbResource.Data.RequestedAt,
		DaysFromPayment:  daysFromPayment(dbResource.Data.PaymentDate, time.Now()),
		VerifiedAt:       dbResource.Data.VerifiedAt,
		ProcessedAt:      dbResource.Data.ProcessedAt,
		ProcessedBy:      dbResource.Data.ProcessedBy,
		ExternalRefundID: dbResource.ExternalRefundID,
		RejectionReason:  dbResource.Data.RejectionReason,
		Kind:             dbResource.Data.Kind,
	}
}

func daysFromPayment(paymentDate time.Time, now time.Time) int {
	days := int(now.Sub(paymentDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}
