package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/salonkit/refunds.api.salonkit.io/helpers"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"github.com/salonkit/refunds.api.salonkit.io/service"
	"github.com/salonkit/refunds.api.salonkit.io/utils"
)

// handleDecisionMessage allows us to mock the call to produceDecisionMessage for unit tests
var handleDecisionMessage = produceDecisionMessage

// HandleListRefundRequests returns refund requests matching the optional
// status and query filters
func HandleListRefundRequests(w http.ResponseWriter, req *http.Request) {
	status := req.URL.Query().Get("status")
	query := req.URL.Query().Get("q")

	list, responseType, err := reviewService.ListRefundRequests(status, query)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error listing refund requests: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, list, http.StatusOK)

	log.InfoR(req, "Successful GET request for refund request list", log.Data{"total": list.Total, "status_filter": status})
}

// HandleGetRefundSummary returns status counts and the approved refund total
func HandleGetRefundSummary(w http.ResponseWriter, req *http.Request) {
	summary, responseType, err := reviewService.GetRefundSummary()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error building refund summary: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, summary, http.StatusOK)

	log.InfoR(req, "Successful GET request for refund summary", log.Data{"total": summary.Total})
}

// HandleGetRefundRequest returns a single refund request
func HandleGetRefundRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["refund_request_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("refund request id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	refundRequest, responseType, err := reviewService.GetRefundRequest(id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting refund request: [%v]", err), log.Data{"service_response_type": responseType.String()})
		if responseType == service.NotFound {
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request not found"), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, refundRequest, http.StatusOK)
}

// HandleApproveRefundRequest approves a refund request and issues the refund
// with the payment provider
func HandleApproveRefundRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["refund_request_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("refund request id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	actor, ok := req.Context().Value(helpers.ContextKeyOperatorID).(string)
	if !ok || actor == "" {
		log.ErrorR(req, fmt.Errorf("no operator identity in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	refundRequest, responseType, err := reviewService.ApproveRefundRequest(req, id, actor)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error approving refund request: [%v]", err), log.Data{"service_response_type": responseType.String()})
		writeDecisionError(w, req, responseType)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(refundRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request to approve refund request", log.Data{"refund_request_id": id, "processed_by": actor})

	err = handleDecisionMessage(refundRequest.ID, refundRequest.Status, refundRequest.ExternalRefundID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error producing refund request decided kafka message: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// HandleRejectRefundRequest rejects a refund request with a reason
func HandleRejectRefundRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["refund_request_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("refund request id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	actor, ok := req.Context().Value(helpers.ContextKeyOperatorID).(string)
	if !ok || actor == "" {
		log.ErrorR(req, fmt.Errorf("no operator identity in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var rejectRequest models.RejectRefundRequest
	err := requestDecoder.Decode(&rejectRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	validate := validator.New()
	err = validate.Struct(rejectRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to reject refund request: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	refundRequest, responseType, err := reviewService.RejectRefundRequest(req, id, actor, rejectRequest.Reason)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error rejecting refund request: [%v]", err), log.Data{"service_response_type": responseType.String()})
		writeDecisionError(w, req, responseType)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(refundRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request to reject refund request", log.Data{"refund_request_id": id, "processed_by": actor})

	err = handleDecisionMessage(refundRequest.ID, refundRequest.Status, refundRequest.ExternalRefundID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error producing refund request decided kafka message: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// HandleProcessVerifiedRequests moves verified refund requests into the
// operator review queue
func HandleProcessVerifiedRequests(w http.ResponseWriter, req *http.Request) {
	processed, responseType, errs := reviewService.ProcessVerifiedRequests(req)
	writeSweepResult(w, req, "queue verified refund requests", processed, responseType, errs)
}

// HandleProcessExpiredVerifications closes refund requests that were never
// verified inside the verification window
func HandleProcessExpiredVerifications(w http.ResponseWriter, req *http.Request) {
	processed, responseType, errs := reviewService.ProcessExpiredVerifications(req)
	writeSweepResult(w, req, "expire unverified refund requests", processed, responseType, errs)
}

// HandleProcessPendingSettlements marks approved refunds processed once the
// provider reports them settled
func HandleProcessPendingSettlements(w http.ResponseWriter, req *http.Request) {
	processed, responseType, errs := reviewService.ProcessPendingSettlements(req)
	writeSweepResult(w, req, "settle approved refund requests", processed, responseType, errs)
}

func writeSweepResult(w http.ResponseWriter, req *http.Request, sweep string, processed []models.RefundRequestResourceRest, responseType service.ResponseType, errs []error) {
	for _, err := range errs {
		log.ErrorR(req, fmt.Errorf("error in sweep to %s: [%v]", sweep, err))
	}

	if responseType != service.Success {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	utils.WriteJSONWithStatus(w, req, models.RefundRequestListRest{
		Total:    len(processed),
		Requests: processed,
	}, http.StatusOK)

	log.InfoR(req, fmt.Sprintf("Successful POST request to %s", sweep), log.Data{"processed": len(processed), "errors": len(errs)})
}

func writeDecisionError(w http.ResponseWriter, req *http.Request, responseType service.ResponseType) {
	switch responseType {
	case service.NotFound:
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request not found"), http.StatusNotFound)
	case service.Conflict:
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("refund request already decided"), http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
