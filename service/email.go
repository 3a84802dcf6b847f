package service

import (
	"fmt"
	"net/url"

	mail "github.com/wneessen/go-mail"

	"github.com/salonkit/refunds.api.salonkit.io/config"
)

// Notification kinds sent to salon owners over the refund request lifecycle
const (
	NotificationKindReceived = "refund-request-received"
	NotificationKindApproved = "refund-request-approved"
	NotificationKindRejected = "refund-request-rejected"
)

// Dispatcher sends lifecycle emails to salon owners. Dispatch failures are
// retryable and never block request creation or a stored decision.
type Dispatcher interface {
	SendVerification(email string, requestID string, token string) error
	Notify(email string, kind string, data map[string]string) error
}

// MailDispatcher is an SMTP implementation of Dispatcher
type MailDispatcher struct {
	Config config.Config
}

// SendVerification sends the signed verification link for a newly submitted
// refund request. The link expires with the token, 24 hours after issue.
func (d *MailDispatcher) SendVerification(email string, requestID string, token string) error {
	link := fmt.Sprintf("%s/refunds/verify?token=%s", d.Config.RefundsWebURL, url.QueryEscape(token))
	body := fmt.Sprintf(
		"A refund request (%s) was raised for your salon.\n\n"+
			"Confirm it by following the link below. The link expires in 24 hours; "+
			"unconfirmed requests are closed automatically.\n\n%s\n",
		requestID, link)

	return d.send(email, "Confirm your refund request", body)
}

// Notify sends a decision or progress notice for a refund request
func (d *MailDispatcher) Notify(email string, kind string, data map[string]string) error {
	var subject, body string

	switch kind {
	case NotificationKindReceived:
		subject = "Your refund request is under review"
		body = fmt.Sprintf("Your refund request %s has been verified and passed to our team for review.\n", data["refund_request_id"])
	case NotificationKindApproved:
		subject = "Your refund has been approved"
		body = fmt.Sprintf("Your refund request %s for %s was approved. The amount will be returned to %s.\n",
			data["refund_request_id"], data["amount"], data["payment_method"])
	case NotificationKindRejected:
		subject = "Your refund request has been declined"
		body = fmt.Sprintf("Your refund request %s was declined: %s\n", data["refund_request_id"], data["rejection_reason"])
	default:
		return fmt.Errorf("unknown notification kind: %s", kind)
	}

	return d.send(email, subject, body)
}

func (d *MailDispatcher) send(to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.From(d.Config.SMTPFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(d.Config.SMTPHost,
		mail.WithPort(d.Config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(d.Config.SMTPUsername),
		mail.WithPassword(d.Config.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}
