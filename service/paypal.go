package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/plutov/paypal/v4"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/models"
)

// refundCurrency is the currency every subscription payment is taken in
const refundCurrency = "GBP"

var payPalClient *paypal.Client

// GetPayPalClient returns an authenticated PayPal client for the configured
// environment
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if payPalClient != nil {
		return payPalClient, nil
	}

	apiBase := PayPalAPIBase(cfg.PaypalEnv)
	if apiBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}

	payPalClient = c
	return payPalClient, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be
// used in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	NewRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error)
	SendWithAuth(req *http.Request, v interface{}) error
}

// PayPalService issues and tracks refunds against the capture of the
// original subscription payment
type PayPalService struct {
	Client  PayPalSDK
	APIBase string
}

// IssueRefund refunds the captured payment behind a refund request. The
// idempotency key is sent as the PayPal-Request-Id header so a retried call
// for the same refund request can never move money twice.
func (pp *PayPalService) IssueRefund(ctx context.Context, refundRequest *models.RefundRequestResourceRest, idempotencyKey string) (string, ResponseType, error) {

	refundCaptureRequest := paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Currency: refundCurrency,
			Value:    refundRequest.Amount,
		},
		NoteToPayer: "SalonKit subscription refund",
	}

	url := fmt.Sprintf("%s/v2/payments/captures/%s/refund", pp.APIBase, refundRequest.PaymentCaptureID)
	req, err := pp.Client.NewRequest(ctx, http.MethodPost, url, refundCaptureRequest)
	if err != nil {
		return "", Error, fmt.Errorf("error generating refund request for paypal: [%v]", err)
	}
	req.Header.Set("PayPal-Request-Id", idempotencyKey)

	refund := &paypal.RefundResponse{}
	err = pp.Client.SendWithAuth(req, refund)
	if err != nil {
		return "", Error, fmt.Errorf("error creating refund with paypal: [%v]", err)
	}

	if refund.Status == "FAILED" || refund.Status == "CANCELLED" {
		log.Debug(fmt.Sprintf("paypal refund response status: %s", refund.Status))
		return "", Error, fmt.Errorf("paypal refund was not accepted - status is %s", refund.Status)
	}

	return refund.ID, Success, nil
}

// CheckRefundStatus fetches the provider state of an issued refund so a
// settled refund can be distinguished from one still in flight
func (pp *PayPalService) CheckRefundStatus(ctx context.Context, externalRefundID string) (*RefundStatus, ResponseType, error) {

	url := fmt.Sprintf("%s/v2/payments/refunds/%s", pp.APIBase, externalRefundID)
	req, err := pp.Client.NewRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Error, fmt.Errorf("error generating refund status request for paypal: [%v]", err)
	}

	refund := &paypal.RefundResponse{}
	err = pp.Client.SendWithAuth(req, refund)
	if err != nil {
		return nil, Error, fmt.Errorf("error checking refund status with paypal: [%v]", err)
	}

	return &RefundStatus{
		Settled:        refund.Status == "COMPLETED",
		ProviderStatus: refund.Status,
	}, Success, nil
}

// PayPalAPIBase returns the API base for the given PayPal environment
func PayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
