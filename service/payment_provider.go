package service

import (
	"context"

	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// RefundStatus is the provider-reported state of an issued refund
type RefundStatus struct {
	Settled        bool
	ProviderStatus string
}

// PaymentProviderService handles the provider-specific money movement for
// approved refund requests. IssueRefund must be idempotent on the supplied
// key so a retry after a timeout cannot move money twice.
type PaymentProviderService interface {
	IssueRefund(ctx context.Context, refundRequest *models.RefundRequestResourceRest, idempotencyKey string) (string, ResponseType, error)
	CheckRefundStatus(ctx context.Context, externalRefundID string) (*RefundStatus, ResponseType, error)
}
