package helpers

import (
	"net/http"
	"strings"
)

// RefundAdminRole is the role an operator needs to review refund requests
const RefundAdminRole = "refund-admin"

// ContextKeyOperatorID is the context key under which the authenticated
// operator identity is stored for downstream handlers
const ContextKeyOperatorID = ContextKey("operator_id")

// ContextKey is the type used for context keys set by the interceptors
type ContextKey string

const (
	operatorIdentityHeader = "X-Operator-Identity"
	operatorRolesHeader    = "X-Operator-Roles"
)

// GetOperatorIdentity returns the operator identity asserted by the gateway
func GetOperatorIdentity(r *http.Request) string {
	return r.Header.Get(operatorIdentityHeader)
}

// GetOperatorRoles returns the raw space-separated operator roles header
func GetOperatorRoles(r *http.Request) string {
	return r.Header.Get(operatorRolesHeader)
}

func getOperatorRolesArray(r *http.Request) []string {
	roles := r.Header.Get(operatorRolesHeader)
	if len(roles) == 0 {
		return nil
	}

	return strings.Split(roles, " ")
}

// IsRoleAuthorised tells whether the request carries the given operator role
func IsRoleAuthorised(r *http.Request, role string) bool {
	if len(role) == 0 {
		return false
	}

	roles := getOperatorRolesArray(r)
	if len(roles) == 0 {
		return false
	}

	return contains(roles, role)
}

// contains tells whether array contains s.
func contains(array []string, s string) bool {
	for _, v := range array {
		if v == s {
			return true
		}
	}
	return false
}
