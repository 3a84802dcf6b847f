package service

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/dao"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"github.com/salonkit/refunds.api.salonkit.io/transformers"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// systemActor is recorded as processed_by on transitions performed by the
// service itself rather than a named operator
const systemActor = "system"

// expiredVerificationReason is recorded when an unverified request passes the
// 24 hour verification window
const expiredVerificationReason = "verification window expired"

var amountFormat = regexp.MustCompile(`^\d+(\.\d{2})?$`)

// isPositiveAmount reports whether amount is a well-formed monetary value
// greater than zero. Every refund request stores a positive amount; the
// submission gate refuses anything else before a record exists.
func isPositiveAmount(amount string) bool {
	if !amountFormat.MatchString(amount) {
		return false
	}
	value, _ := decimal.NewFromString(amount)
	return value.IsPositive()
}

// settlementConcurrency bounds parallel provider status checks in a sweep
const settlementConcurrency = 4

// ReviewService contains the operator-facing operations over stored refund
// requests
type ReviewService struct {
	Provider   PaymentProviderService
	Dispatcher Dispatcher
	DAO        dao.DAO
	Config     config.Config
}

// ListRefundRequests returns requests matching a status filter and/or a
// case-insensitive substring match over salon name, owner name and owner
// email. Read-only.
func (service *ReviewService) ListRefundRequests(status string, query string) (*models.RefundRequestListRest, ResponseType, error) {
	resources, err := service.DAO.ListRefundRequestResources(status, query)
	if err != nil {
		return nil, Error, fmt.Errorf("error listing refund requests: [%v]", err)
	}

	requests := make([]models.RefundRequestResourceRest, 0, len(resources))
	for _, resource := range resources {
		requests = append(requests, transformers.RefundRequestTransformer{}.TransformToRest(resource))
	}

	return &models.RefundRequestListRest{
		Total:    len(requests),
		Requests: requests,
	}, Success, nil
}

// GetRefundRequest retrieves a single refund request
func (service *ReviewService) GetRefundRequest(id string) (*models.RefundRequestResourceRest, ResponseType, error) {
	resource, err := service.DAO.GetRefundRequestResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting refund request from db: [%v]", err)
	}
	if resource == nil {
		return nil, NotFound, fmt.Errorf("refund request not found. id: %s", id)
	}

	rest := transformers.RefundRequestTransformer{}.TransformToRest(*resource)
	return &rest, Success, nil
}

// GetRefundSummary recomputes the admin-visible aggregates from the store:
// counts per status and the total amount approved. Nothing here is cached.
func (service *ReviewService) GetRefundSummary() (*models.RefundSummaryRest, ResponseType, error) {
	resources, err := service.DAO.ListRefundRequestResources("", "")
	if err != nil {
		return nil, Error, fmt.Errorf("error listing refund requests: [%v]", err)
	}

	statusCounts := make(map[string]int, len(requestStatuses))
	for _, status := range requestStatuses {
		statusCounts[status] = 0
	}

	var approvedTotal decimal.Decimal
	for _, resource := range resources {
		statusCounts[resource.Data.Status]++

		if resource.Data.Status != Approved.String() && resource.Data.Status != Processed.String() {
			continue
		}
		if !amountFormat.MatchString(resource.Data.Amount) {
			return nil, Error, fmt.Errorf("amount [%s] format incorrect on refund request [%s]", resource.Data.Amount, resource.ID)
		}
		amount, _ := decimal.NewFromString(resource.Data.Amount)
		approvedTotal = approvedTotal.Add(amount)
	}

	return &models.RefundSummaryRest{
		StatusCounts:  statusCounts,
		ApprovedTotal: approvedTotal.StringFixed(2),
		Total:         len(resources),
	}, Success, nil
}

// ApproveRefundRequest issues the refund with the payment provider and, only
// once the provider call has succeeded, records the approved status. The
// request id doubles as the provider idempotency key, so losing a transition
// race after a successful provider call cannot have moved money twice.
func (service *ReviewService) ApproveRefundRequest(req *http.Request, id string, actor string) (*models.RefundRequestResourceRest, ResponseType, error) {
	resource, err := service.DAO.GetRefundRequestResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting refund request from db: [%v]", err)
	}
	if resource == nil {
		return nil, NotFound, fmt.Errorf("refund request not found. id: %s", id)
	}
	if !isApprovable(resource.Data.Status) {
		return nil, Conflict, fmt.Errorf("refund request already decided: status is %s", resource.Data.Status)
	}

	rest := transformers.RefundRequestTransformer{}.TransformToRest(*resource)

	externalRefundID, response, err := service.Provider.IssueRefund(req.Context(), &rest, id)
	if err != nil {
		// The stored status is deliberately untouched here: the operator can
		// retry once the provider recovers.
		return nil, response, fmt.Errorf("error issuing refund with payment provider: [%v]", err)
	}

	processedAt := time.Now().Truncate(time.Millisecond)
	update := &models.RefundRequestResourceDB{
		ExternalRefundID: externalRefundID,
		Data: models.RefundRequestDataDB{
			Status:      Approved.String(),
			ProcessedAt: &processedAt,
			ProcessedBy: actor,
		},
	}

	err = service.DAO.TransitionRefundRequestStatus(id, approvableStatuses, update)
	if err != nil {
		return nil, transitionResponseType(err), fmt.Errorf("error recording approval: [%v]", err)
	}

	approved, response, err := service.GetRefundRequest(id)
	if err != nil {
		return nil, response, err
	}

	service.notify(req, approved, NotificationKindApproved, map[string]string{
		"refund_request_id": approved.ID,
		"amount":            approved.Amount,
		"payment_method":    approved.PaymentMethod,
	})

	return approved, Success, nil
}

// RejectRefundRequest records an operator rejection. No provider call is
// made and the payment fields are untouched.
func (service *ReviewService) RejectRefundRequest(req *http.Request, id string, actor string, reason string) (*models.RefundRequestResourceRest, ResponseType, error) {
	resource, err := service.DAO.GetRefundRequestResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting refund request from db: [%v]", err)
	}
	if resource == nil {
		return nil, NotFound, fmt.Errorf("refund request not found. id: %s", id)
	}
	if !isApprovable(resource.Data.Status) {
		return nil, Conflict, fmt.Errorf("refund request already decided: status is %s", resource.Data.Status)
	}

	processedAt := time.Now().Truncate(time.Millisecond)
	update := &models.RefundRequestResourceDB{
		Data: models.RefundRequestDataDB{
			Status:          Rejected.String(),
			ProcessedAt:     &processedAt,
			ProcessedBy:     actor,
			RejectionReason: reason,
		},
	}

	err = service.DAO.TransitionRefundRequestStatus(id, approvableStatuses, update)
	if err != nil {
		return nil, transitionResponseType(err), fmt.Errorf("error recording rejection: [%v]", err)
	}

	rejected, response, err := service.GetRefundRequest(id)
	if err != nil {
		return nil, response, err
	}

	service.notify(req, rejected, NotificationKindRejected, map[string]string{
		"refund_request_id": rejected.ID,
		"rejection_reason":  rejected.RejectionReason,
	})

	return rejected, Success, nil
}

// ProcessVerifiedRequests moves verified requests into the operator review
// queue and tells the owner their request is under review
func (service *ReviewService) ProcessVerifiedRequests(req *http.Request) ([]models.RefundRequestResourceRest, ResponseType, []error) {
	resources, err := service.DAO.ListRefundRequestResources(Verified.String(), "")
	if err != nil {
		return nil, Error, []error{fmt.Errorf("error retrieving verified refund requests: [%v]", err)}
	}
	if len(resources) == 0 {
		return nil, Success, []error{errors.New("no verified refund requests found")}
	}

	var processed []models.RefundRequestResourceRest
	var errs []error

	for _, resource := range resources {
		update := &models.RefundRequestResourceDB{
			Data: models.RefundRequestDataDB{Status: PendingApproval.String()},
		}
		err := service.DAO.TransitionRefundRequestStatus(resource.ID, []string{Verified.String()}, update)
		if err != nil {
			errs = append(errs, fmt.Errorf("error queueing refund request [%s]: [%v]", resource.ID, err))
			continue
		}

		rest := transformers.RefundRequestTransformer{}.TransformToRest(resource)
		rest.Status = PendingApproval.String()
		processed = append(processed, rest)

		service.notify(req, &rest, NotificationKindReceived, map[string]string{
			"refund_request_id": rest.ID,
		})
	}

	return processed, Success, errs
}

// ProcessExpiredVerifications closes requests still unverified 24 hours after
// submission. They are rejected with a fixed reason by the system actor so
// the audit record stays complete.
func (service *ReviewService) ProcessExpiredVerifications(req *http.Request) ([]models.RefundRequestResourceRest, ResponseType, []error) {
	resources, err := service.DAO.ListRefundRequestResources(PendingVerification.String(), "")
	if err != nil {
		return nil, Error, []error{fmt.Errorf("error retrieving unverified refund requests: [%v]", err)}
	}

	cutoff := time.Now().Add(-VerificationTokenTTL)

	var expired []models.RefundRequestResourceRest
	var errs []error

	for _, resource := range resources {
		if resource.Data.RequestedAt.After(cutoff) {
			continue
		}

		processedAt := time.Now().Truncate(time.Millisecond)
		update := &models.RefundRequestResourceDB{
			Data: models.RefundRequestDataDB{
				Status:          Rejected.String(),
				ProcessedAt:     &processedAt,
				ProcessedBy:     systemActor,
				RejectionReason: expiredVerificationReason,
			},
		}
		err := service.DAO.TransitionRefundRequestStatus(resource.ID, []string{PendingVerification.String()}, update)
		if err != nil {
			errs = append(errs, fmt.Errorf("error expiring refund request [%s]: [%v]", resource.ID, err))
			continue
		}

		rest := transformers.RefundRequestTransformer{}.TransformToRest(resource)
		rest.Status = Rejected.String()
		rest.RejectionReason = expiredVerificationReason
		expired = append(expired, rest)
	}

	if len(expired) == 0 && len(errs) == 0 {
		errs = append(errs, errors.New("no refund requests past the verification window"))
	}

	return expired, Success, errs
}

// ProcessPendingSettlements polls the provider for every approved refund and
// marks the settled ones processed. Provider checks run concurrently but the
// status writes stay compare-and-swap guarded.
func (service *ReviewService) ProcessPendingSettlements(req *http.Request) ([]models.RefundRequestResourceRest, ResponseType, []error) {
	resources, err := service.DAO.ListRefundRequestResources(Approved.String(), "")
	if err != nil {
		return nil, Error, []error{fmt.Errorf("error retrieving approved refund requests: [%v]", err)}
	}
	if len(resources) == 0 {
		return nil, Success, []error{errors.New("no approved refund requests found")}
	}

	settled := make([]*models.RefundRequestResourceRest, len(resources))
	checkErrs := make([]error, len(resources))

	var eg errgroup.Group
	eg.SetLimit(settlementConcurrency)

	for i := range resources {
		i := i
		resource := resources[i]
		eg.Go(func() error {
			if resource.ExternalRefundID == "" {
				checkErrs[i] = fmt.Errorf("approved refund request [%s] has no external refund id", resource.ID)
				return nil
			}

			status, _, err := service.Provider.CheckRefundStatus(req.Context(), resource.ExternalRefundID)
			if err != nil {
				checkErrs[i] = fmt.Errorf("error checking refund status for [%s]: [%v]", resource.ID, err)
				return nil
			}
			if !status.Settled {
				log.TraceR(req, "refund not yet settled", log.Data{"refund_request_id": resource.ID, "provider_status": status.ProviderStatus})
				return nil
			}

			update := &models.RefundRequestResourceDB{
				Data: models.RefundRequestDataDB{Status: Processed.String()},
			}
			err = service.DAO.TransitionRefundRequestStatus(resource.ID, []string{Approved.String()}, update)
			if err != nil {
				checkErrs[i] = fmt.Errorf("error recording settlement for [%s]: [%v]", resource.ID, err)
				return nil
			}

			rest := transformers.RefundRequestTransformer{}.TransformToRest(resource)
			rest.Status = Processed.String()
			settled[i] = &rest
			return nil
		})
	}

	// goroutines report per-item failures through checkErrs
	_ = eg.Wait()

	var processed []models.RefundRequestResourceRest
	for _, rest := range settled {
		if rest != nil {
			processed = append(processed, *rest)
		}
	}
	var errs []error
	for _, err := range checkErrs {
		if err != nil {
			errs = append(errs, err)
		}
	}

	return processed, Success, errs
}

func (service *ReviewService) notify(req *http.Request, rest *models.RefundRequestResourceRest, kind string, data map[string]string) {
	err := service.Dispatcher.Notify(rest.OwnerEmail, kind, data)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error dispatching %s notification: [%v]", kind, err), log.Data{"refund_request_id": rest.ID})
	}
}

func isApprovable(status string) bool {
	for _, allowed := range approvableStatuses {
		if status == allowed {
			return true
		}
	}
	return false
}

func transitionResponseType(err error) ResponseType {
	switch err {
	case dao.ErrRefundRequestNotFound:
		return NotFound
	case dao.ErrStatusConflict:
		return Conflict
	default:
		return Error
	}
}
