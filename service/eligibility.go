package service

import (
	"time"

	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// RefundWindowDays is the number of days after a payment during which a
// refund may be requested.
const RefundWindowDays = 7

// EvaluateEligibility computes whether a salon's last payment still falls
// inside the refundable window. It has no side effects and is the hard gate
// in front of the submission process: an ineligible salon never produces a
// refund request.
func EvaluateEligibility(paymentDate time.Time, now time.Time) models.EligibilityRest {
	daysFromPayment := int(now.Sub(paymentDate).Hours() / 24)

	// A payment dated in the future is a data error, not a valid state.
	// Clamp so the window maths stays sane.
	if daysFromPayment < 0 {
		daysFromPayment = 0
	}

	daysLeft := RefundWindowDays - daysFromPayment
	if daysLeft < 0 {
		daysLeft = 0
	}

	return models.EligibilityRest{
		Eligible:        daysFromPayment <= RefundWindowDays,
		DaysFromPayment: daysFromPayment,
		DaysLeft:        daysLeft,
		PaymentDate:     paymentDate,
	}
}
