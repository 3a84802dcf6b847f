package dao

import (
	"errors"

	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// ErrRefundRequestNotFound is returned by a status transition when no refund
// request exists for the supplied id.
var ErrRefundRequestNotFound = errors.New("refund request not found")

// ErrStatusConflict is returned by a status transition when the refund request
// exists but its current status is not one of the allowed source statuses.
// A losing concurrent decision surfaces as this error rather than a silent
// double-write.
var ErrStatusConflict = errors.New("refund request not in an allowed status")

// DAO is an interface for accessing refund request data from a backend store
type DAO interface {
	CreateRefundRequestResource(refundRequest *models.RefundRequestResourceDB) error
	GetRefundRequestResource(id string) (*models.RefundRequestResourceDB, error)
	ListRefundRequestResources(status string, query string) ([]models.RefundRequestResourceDB, error)
	TransitionRefundRequestStatus(id string, allowedFrom []string, update *models.RefundRequestResourceDB) error
}
