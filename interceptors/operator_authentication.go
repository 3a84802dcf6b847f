package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/salonkit/refunds.api.salonkit.io/helpers"
)

// OperatorAuthenticationIntercept checks the gateway-asserted operator
// identity and role headers before allowing access to the admin routes. The
// authenticated identity is added to the request context so handlers can
// record it as the deciding actor.
func OperatorAuthenticationIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := helpers.GetOperatorIdentity(r)
		if identity == "" {
			log.ErrorR(r, fmt.Errorf("OperatorAuthenticationIntercept unauthorised: no operator identity"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if !helpers.IsRoleAuthorised(r, helpers.RefundAdminRole) {
			log.ErrorR(r, fmt.Errorf("OperatorAuthenticationIntercept unauthorised: operator is not a refund admin"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		log.DebugR(r, "OperatorAuthenticationIntercept authorised", log.Data{
			"operator_id": identity,
			"roles":       helpers.GetOperatorRoles(r),
		})

		ctx := context.WithValue(r.Context(), helpers.ContextKeyOperatorID, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
