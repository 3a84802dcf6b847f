package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/salonkit/refunds.api.salonkit.io/dao"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"github.com/salonkit/refunds.api.salonkit.io/transformers"
)

// VerificationTokenTTL is how long a verification link stays valid after the
// request is submitted
const VerificationTokenTTL = 24 * time.Hour

const tokenIssuer = "refunds.api.salonkit.io"

// VerificationClaims are the claims carried by a refund request verification
// token. The subject is the refund request id.
type VerificationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// VerificationService issues and redeems the signed, time-limited tokens that
// prove the registered salon owner saw the refund request
type VerificationService struct {
	DAO    dao.DAO
	Secret []byte
}

// IssueToken signs a verification token for a refund request
func (service *VerificationService) IssueToken(requestID string, email string) (string, error) {
	now := time.Now()

	claims := VerificationClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   requestID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(VerificationTokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.Secret)
}

// ParseToken validates a verification token's signature and expiry and
// returns its claims
func (service *VerificationService) ParseToken(token string) (*VerificationClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &VerificationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return service.Secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*VerificationClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid verification token")
	}

	return claims, nil
}

// VerifyRefundRequest redeems a verification token, moving the refund request
// from pending_verification to verified. The transition is a compare-and-swap
// so a replayed link cannot rewind a later status.
func (service *VerificationService) VerifyRefundRequest(req *http.Request, token string) (*models.RefundRequestResourceRest, ResponseType, error) {
	claims, err := service.ParseToken(token)
	if err != nil {
		return nil, Forbidden, fmt.Errorf("invalid or expired verification token: [%v]", err)
	}

	verifiedAt := time.Now().Truncate(time.Millisecond)
	update := &models.RefundRequestResourceDB{
		Data: models.RefundRequestDataDB{
			Status:     Verified.String(),
			VerifiedAt: &verifiedAt,
		},
	}

	err = service.DAO.TransitionRefundRequestStatus(claims.Subject, []string{PendingVerification.String()}, update)
	switch err {
	case nil:
	case dao.ErrRefundRequestNotFound:
		return nil, NotFound, fmt.Errorf("refund request not found. id: %s", claims.Subject)
	case dao.ErrStatusConflict:
		return nil, Conflict, fmt.Errorf("refund request already verified or decided. id: %s", claims.Subject)
	default:
		return nil, Error, fmt.Errorf("error updating refund request status: [%v]", err)
	}

	resource, err := service.DAO.GetRefundRequestResource(claims.Subject)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting verified refund request: [%v]", err)
	}
	if resource == nil {
		return nil, Error, fmt.Errorf("verified refund request missing from db. id: %s", claims.Subject)
	}

	rest := transformers.RefundRequestTransformer{}.TransformToRest(*resource)
	return &rest, Success, nil
}
