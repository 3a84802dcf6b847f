package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"github.com/salonkit/refunds.api.salonkit.io/service"
	"github.com/salonkit/refunds.api.salonkit.io/utils"
)

// HandleCreateRefundRequest runs the full submission process for a new refund
// request: salon lookup, eligibility gate, input validation and finally the
// send-verification transition that persists the request
func HandleCreateRefundRequest(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingRefundRequest models.IncomingRefundRequest
	err := requestDecoder.Decode(&incomingRefundRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	validate := validator.New()
	err = validate.Struct(incomingRefundRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to create refund request: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sub, responseType, err := submissionService.StartSubmission(req, incomingRefundRequest.SalonID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error starting refund request submission: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.NotFound:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("salon not found"), http.StatusNotFound)
		case service.Forbidden:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	validationErr := sub.Continue(incomingRefundRequest.ConfirmEmail, incomingRefundRequest.Reason, incomingRefundRequest.AgreedToTerms)
	if validationErr != nil {
		log.ErrorR(req, fmt.Errorf("refund request input failed validation: [%v]", validationErr), log.Data{"code": validationErr.Code})
		utils.WriteJSONWithStatus(w, req, utils.NewValidationResponse(validationErr.Code, validationErr.Message), http.StatusUnprocessableEntity)
		return
	}

	refundRequest, responseType, err := submissionService.SubmitSubmission(req, sub)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error submitting refund request: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	err = json.NewEncoder(w).Encode(refundRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request for new refund request", log.Data{"refund_request_id": refundRequest.ID, "status": http.StatusCreated})
}

// HandleGetEligibility reports whether a salon's last payment is still inside
// the refund window, without opening a submission
func HandleGetEligibility(w http.ResponseWriter, req *http.Request) {
	salonID := req.URL.Query().Get("salon_id")
	if salonID == "" {
		log.ErrorR(req, fmt.Errorf("salon id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	salon, responseType, err := salonDirectory.GetSalon(req, salonID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting salon resource: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if salon == nil {
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("salon not found"), http.StatusNotFound)
		return
	}

	eligibility := service.EvaluateEligibility(salon.LastPayment.Date, time.Now())

	utils.WriteJSONWithStatus(w, req, eligibility, http.StatusOK)

	log.InfoR(req, "Successful GET request for refund eligibility", log.Data{"salon_id": salonID, "eligible": eligibility.Eligible})
}

// HandleVerifyRefundRequest redeems a verification token from the emailed link
func HandleVerifyRefundRequest(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		log.ErrorR(req, fmt.Errorf("verification token not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	refundRequest, responseType, err := verificationService.VerifyRefundRequest(req, token)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error verifying refund request: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.Forbidden:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("verification link is invalid or has expired"), http.StatusForbidden)
		case service.NotFound:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request not found"), http.StatusNotFound)
		case service.Conflict:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request already verified or decided"), http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSONWithStatus(w, req, refundRequest, http.StatusOK)

	log.InfoR(req, "Successful GET request to verify refund request", log.Data{"refund_request_id": refundRequest.ID, "status": refundRequest.Status})
}

// HandleResendVerification re-issues the verification email for a refund
// request still awaiting verification
func HandleResendVerification(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["refund_request_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("refund request id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	responseType, err := submissionService.ResendVerification(req, id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error resending verification: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.NotFound:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request not found"), http.StatusNotFound)
		case service.Conflict:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request no longer awaiting verification"), http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("verification email sent"), http.StatusOK)

	log.InfoR(req, "Successful POST request to resend verification", log.Data{"refund_request_id": id})
}
