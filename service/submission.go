package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/dao"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"github.com/salonkit/refunds.api.salonkit.io/transformers"
)

// RefundRequestKind identifies the resource kind of a stored refund request
const RefundRequestKind = "refund-request#refund-request"

// supportContact is shown to owners refused at the eligibility gate
const supportContact = "support@salonkit.io"

// SubmissionState Enum Type
type SubmissionState int

// Enumeration containing all states of the requester-facing submission process
const (
	Collecting SubmissionState = 1 + iota
	AwaitingVerification
	Submitted
	Abandoned
)

// String representation of submission states
var submissionStates = [...]string{
	"collecting",
	"awaiting-verification",
	"submitted",
	"abandoned",
}

func (submissionState SubmissionState) String() string {
	return submissionStates[submissionState-1]
}

// Validation error codes for the Collecting stage
const (
	EmailMismatch    = "email-mismatch"
	MissingReason    = "missing-reason"
	TermsNotAccepted = "terms-not-accepted"
	InvalidState     = "invalid-state"
)

// ValidationError is a recoverable Collecting-stage failure. It is surfaced
// inline to the requester and never advances the submission state.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission is a short-lived, single-session state machine run by the salon
// owner to collect and validate a refund request before it is persisted.
// Nothing is written to the store until the submit transition.
type Submission struct {
	State         SubmissionState
	Salon         *models.SalonResource
	Eligibility   models.EligibilityRest
	Reason        string
	ConfirmEmail  string
	AgreedToTerms bool
	Request       *models.RefundRequestResourceRest
}

// Continue runs the Collecting stage validation, in order: confirm email,
// reason, terms agreement. On success the submission moves to
// AwaitingVerification; any failure keeps it at Collecting.
func (s *Submission) Continue(confirmEmail string, reason string, agreedToTerms bool) *ValidationError {
	if s.State != Collecting {
		return &ValidationError{Code: InvalidState, Message: fmt.Sprintf("submission is %s, not collecting input", s.State)}
	}

	if !strings.EqualFold(strings.TrimSpace(confirmEmail), strings.TrimSpace(s.Salon.OwnerEmail)) {
		return &ValidationError{Code: EmailMismatch, Message: "confirmation email does not match the registered owner email"}
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Code: MissingReason, Message: "a reason for the refund request is required"}
	}
	if !agreedToTerms {
		return &ValidationError{Code: TermsNotAccepted, Message: "the refund terms must be accepted"}
	}

	s.ConfirmEmail = confirmEmail
	s.Reason = reason
	s.AgreedToTerms = agreedToTerms
	s.State = AwaitingVerification

	return nil
}

// Abandon discards an in-progress submission. Abandoning after submit has no
// effect, the stored request already exists independently of this session.
func (s *Submission) Abandon() {
	if s.State == Submitted {
		return
	}
	s.State = Abandoned
}

// SubmissionService drives the requester-facing submission process
type SubmissionService struct {
	Directory    SalonDirectory
	Dispatcher   Dispatcher
	Verification *VerificationService
	DAO          dao.DAO
	Config       config.Config
}

// StartSubmission resolves the salon and applies the eligibility gate. An
// ineligible salon is refused outright: no submission session is opened and
// no refund request can ever be created for it.
func (service *SubmissionService) StartSubmission(req *http.Request, salonID string) (*Submission, ResponseType, error) {
	salon, response, err := service.Directory.GetSalon(req, salonID)
	if err != nil {
		return nil, response, fmt.Errorf("error getting salon resource: [%v]", err)
	}
	if salon == nil {
		return nil, NotFound, fmt.Errorf("salon not found. id: %s", salonID)
	}

	if !isPositiveAmount(salon.LastPayment.Amount) {
		return nil, InvalidData, fmt.Errorf("salon last payment amount [%s] is not a positive amount", salon.LastPayment.Amount)
	}

	eligibility := EvaluateEligibility(salon.LastPayment.Date, time.Now())
	if !eligibility.Eligible {
		return nil, Forbidden, fmt.Errorf(
			"refund window has closed: payment dated %s was %d days ago, refunds can be requested up to %d days after payment. Contact %s for help",
			eligibility.PaymentDate.Format("2006-01-02"), eligibility.DaysFromPayment, RefundWindowDays, supportContact)
	}

	return &Submission{
		State:       Collecting,
		Salon:       salon,
		Eligibility: eligibility,
	}, Success, nil
}

// SubmitSubmission performs the send-verification transition: the refund
// request is written to the store at pending_verification and the signed
// verification link is dispatched to the registered owner email. A dispatch
// failure is retryable and never blocks creation.
func (service *SubmissionService) SubmitSubmission(req *http.Request, sub *Submission) (*models.RefundRequestResourceRest, ResponseType, error) {
	if sub.State != AwaitingVerification {
		return nil, InvalidData, fmt.Errorf("submission is %s, not awaiting verification", sub.State)
	}

	refundRequest := models.RefundRequestResourceDB{
		ID: uuid.NewString(),
		Data: models.RefundRequestDataDB{
			SalonID:          sub.Salon.ID,
			SalonName:        sub.Salon.Name,
			OwnerName:        sub.Salon.OwnerName,
			OwnerEmail:       sub.Salon.OwnerEmail,
			Amount:           sub.Salon.LastPayment.Amount,
			PaymentDate:      sub.Salon.LastPayment.Date,
			PaymentMethod:    sub.Salon.LastPayment.Method,
			PaymentCaptureID: sub.Salon.LastPayment.CaptureID,
			Reason:           sub.Reason,
			Status:           PendingVerification.String(),
			Kind:             RefundRequestKind,
		},
	}

	err := service.DAO.CreateRefundRequestResource(&refundRequest)
	if err != nil {
		return nil, Error, fmt.Errorf("error writing refund request to MongoDB: [%v]", err)
	}

	sub.State = Submitted
	rest := transformers.RefundRequestTransformer{}.TransformToRest(refundRequest)
	sub.Request = &rest

	err = service.sendVerificationEmail(&rest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error dispatching verification email: [%v]", err), log.Data{"refund_request_id": rest.ID})
	}

	return &rest, Success, nil
}

// ResendVerification re-issues the verification link for a refund request
// still awaiting verification
func (service *SubmissionService) ResendVerification(req *http.Request, id string) (ResponseType, error) {
	resource, err := service.DAO.GetRefundRequestResource(id)
	if err != nil {
		return Error, fmt.Errorf("error getting refund request from db: [%v]", err)
	}
	if resource == nil {
		return NotFound, fmt.Errorf("refund request not found. id: %s", id)
	}
	if resource.Data.Status != PendingVerification.String() {
		return Conflict, fmt.Errorf("refund request is %s, verification no longer applies", resource.Data.Status)
	}

	rest := transformers.RefundRequestTransformer{}.TransformToRest(*resource)
	err = service.sendVerificationEmail(&rest)
	if err != nil {
		return Error, fmt.Errorf("error dispatching verification email: [%v]", err)
	}

	return Success, nil
}

func (service *SubmissionService) sendVerificationEmail(rest *models.RefundRequestResourceRest) error {
	token, err := service.Verification.IssueToken(rest.ID, rest.OwnerEmail)
	if err != nil {
		return fmt.Errorf("error issuing verification token: [%v]", err)
	}
	return service.Dispatcher.SendVerification(rest.OwnerEmail, rest.ID, token)
}
