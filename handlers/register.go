package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/dao"
	"github.com/salonkit/refunds.api.salonkit.io/interceptors"
	"github.com/salonkit/refunds.api.salonkit.io/service"
)

var salonDirectory service.SalonDirectory
var submissionService *service.SubmissionService
var verificationService *service.VerificationService
var reviewService *service.ReviewService

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, cfg config.Config) {
	m := dao.NewDAOService(&cfg)

	payPalClient, err := service.GetPayPalClient(cfg)
	if err != nil {
		log.Error(fmt.Errorf("error creating paypal client: [%v]. Exiting", err))
		os.Exit(1)
	}

	payPalService := &service.PayPalService{
		Client:  payPalClient,
		APIBase: service.PayPalAPIBase(cfg.PaypalEnv),
	}

	dispatcher := &service.MailDispatcher{Config: cfg}

	salonDirectory = &service.SalonAPIClient{Config: cfg}

	verificationService = &service.VerificationService{
		DAO:    m,
		Secret: []byte(cfg.VerificationTokenSecret),
	}

	submissionService = &service.SubmissionService{
		Directory:    salonDirectory,
		Dispatcher:   dispatcher,
		Verification: verificationService,
		DAO:          m,
		Config:       cfg,
	}

	reviewService = &service.ReviewService{
		Provider:   payPalService,
		Dispatcher: dispatcher,
		DAO:        m,
		Config:     cfg,
	}

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	// Create subrouters. The admin routes need the operator auth middleware
	// and the public routes do not, so the router needs to be split up. This
	// allows per-subrouter middleware.
	publicRouter := mainRouter.PathPrefix("/refund-requests").Subrouter()
	publicRouter.HandleFunc("", HandleCreateRefundRequest).Methods("POST").Name("create-refund-request")
	publicRouter.HandleFunc("/eligibility", HandleGetEligibility).Methods("GET").Name("get-eligibility")
	publicRouter.HandleFunc("/verify", HandleVerifyRefundRequest).Methods("GET").Name("verify-refund-request")
	publicRouter.HandleFunc("/{refund_request_id}/resend-verification", HandleResendVerification).Methods("POST").Name("resend-verification")

	adminRouter := mainRouter.PathPrefix("/admin/refund-requests").Subrouter()
	adminRouter.HandleFunc("", HandleListRefundRequests).Methods("GET").Name("list-refund-requests")
	adminRouter.HandleFunc("/summary", HandleGetRefundSummary).Methods("GET").Name("get-refund-summary")
	adminRouter.HandleFunc("/process-verified", HandleProcessVerifiedRequests).Methods("POST").Name("process-verified")
	adminRouter.HandleFunc("/process-expired", HandleProcessExpiredVerifications).Methods("POST").Name("process-expired")
	adminRouter.HandleFunc("/process-settlements", HandleProcessPendingSettlements).Methods("POST").Name("process-settlements")
	adminRouter.HandleFunc("/{refund_request_id}", HandleGetRefundRequest).Methods("GET").Name("get-refund-request")
	adminRouter.HandleFunc("/{refund_request_id}/approve", HandleApproveRefundRequest).Methods("POST").Name("approve-refund-request")
	adminRouter.HandleFunc("/{refund_request_id}/reject", HandleRejectRefundRequest).Methods("POST").Name("reject-refund-request")

	// Set middleware for subrouters
	publicRouter.Use(log.Handler)
	adminRouter.Use(log.Handler, interceptors.OperatorAuthenticationIntercept)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
