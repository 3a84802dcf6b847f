package service

// RequestStatus Enum Type
type RequestStatus int

// Enumeration containing all possible refund request statuses
const (
	PendingVerification RequestStatus = 1 + iota
	Verified
	PendingApproval
	Approved
	Rejected
	Processed
)

// String representation of refund request statuses
var requestStatuses = [...]string{
	"pending_verification",
	"verified",
	"pending_approval",
	"approved",
	"rejected",
	"processed",
}

func (requestStatus RequestStatus) String() string {
	return requestStatuses[requestStatus-1]
}

// approvableStatuses are the statuses an operator decision may act on. The
// same precondition makes approved and rejected terminal for ordinary
// operation.
var approvableStatuses = []string{Verified.String(), PendingApproval.String()}
