package service

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/dao"
	"github.com/salonkit/refunds.api.salonkit.io/fixtures"
	"github.com/salonkit/refunds.api.salonkit.io/models"

	. "github.com/smartystreets/goconvey/convey"
)

func reviewServiceFixture(t *testing.T) (*ReviewService, *dao.MockDAO, *MockPaymentProviderService, *MockDispatcher, *gomock.Controller) {
	mockCtrl := gomock.NewController(t)
	cfg, _ := config.Get()

	mockDao := dao.NewMockDAO(mockCtrl)
	mockProvider := NewMockPaymentProviderService(mockCtrl)
	mockDispatcher := NewMockDispatcher(mockCtrl)

	service := &ReviewService{
		Provider:   mockProvider,
		Dispatcher: mockDispatcher,
		DAO:        mockDao,
		Config:     *cfg,
	}

	return service, mockDao, mockProvider, mockDispatcher, mockCtrl
}

func TestUnitListRefundRequests(t *testing.T) {
	service, mockDao, _, _, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	Convey("Error listing refund requests", t, func() {
		mockDao.EXPECT().
			ListRefundRequestResources("pending_approval", "").
			Return(nil, fmt.Errorf("db unavailable"))

		list, status, err := service.ListRefundRequests("pending_approval", "")

		So(list, ShouldBeNil)
		So(status, ShouldEqual, Error)
		So(err.Error(), ShouldEqual, "error listing refund requests: [db unavailable]")
	})

	Convey("Matching refund requests are returned with a total", t, func() {
		resources := []models.RefundRequestResourceDB{
			*fixtures.GetRefundRequestDB("pending_approval"),
			*fixtures.GetRefundRequestDB("pending_approval"),
		}

		mockDao.EXPECT().
			ListRefundRequestResources("pending_approval", "shear").
			Return(resources, nil)

		list, status, err := service.ListRefundRequests("pending_approval", "shear")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(list.Total, ShouldEqual, 2)
		So(list.Requests[0].Status, ShouldEqual, "pending_approval")
	})

	Convey("No matches is an empty list, not an error", t, func() {
		mockDao.EXPECT().
			ListRefundRequestResources("", "zzz").
			Return(nil, nil)

		list, status, err := service.ListRefundRequests("", "zzz")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(list.Total, ShouldEqual, 0)
	})
}

func TestUnitGetRefundSummary(t *testing.T) {
	service, mockDao, _, _, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	Convey("Counts cover every status and the approved total sums approved and processed", t, func() {
		approved := fixtures.GetRefundRequestDB("approved")
		approved.Data.Amount = "299.00"
		processed := fixtures.GetRefundRequestDB("processed")
		processed.Data.Amount = "99.00"
		rejected := fixtures.GetRefundRequestDB("rejected")

		mockDao.EXPECT().
			ListRefundRequestResources("", "").
			Return([]models.RefundRequestResourceDB{*approved, *processed, *rejected}, nil)

		summary, status, err := service.GetRefundSummary()

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(summary.Total, ShouldEqual, 3)
		So(summary.StatusCounts["approved"], ShouldEqual, 1)
		So(summary.StatusCounts["processed"], ShouldEqual, 1)
		So(summary.StatusCounts["rejected"], ShouldEqual, 1)
		So(summary.StatusCounts["pending_verification"], ShouldEqual, 0)
		So(summary.ApprovedTotal, ShouldEqual, "398.00")
	})

	Convey("A malformed stored amount fails the summary", t, func() {
		approved := fixtures.GetRefundRequestDB("approved")
		approved.Data.Amount = "not-money"

		mockDao.EXPECT().
			ListRefundRequestResources("", "").
			Return([]models.RefundRequestResourceDB{*approved}, nil)

		summary, status, err := service.GetRefundSummary()

		So(summary, ShouldBeNil)
		So(status, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "format incorrect")
	})
}

func TestUnitApproveRefundRequest(t *testing.T) {
	service, mockDao, mockProvider, mockDispatcher, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/test", nil)

	Convey("Refund request not found", t, func() {
		mockDao.EXPECT().
			GetRefundRequestResource("missing").
			Return(nil, nil)

		refundRequest, status, err := service.ApproveRefundRequest(req, "missing", "ops-123")

		So(refundRequest, ShouldBeNil)
		So(status, ShouldEqual, NotFound)
		So(err.Error(), ShouldEqual, "refund request not found. id: missing")
	})

	Convey("An already decided request cannot be approved again", t, func() {
		resource := fixtures.GetRefundRequestDB("approved")

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		refundRequest, status, err := service.ApproveRefundRequest(req, resource.ID, "ops-123")

		So(refundRequest, ShouldBeNil)
		So(status, ShouldEqual, Conflict)
		So(err.Error(), ShouldEqual, "refund request already decided: status is approved")
	})

	Convey("A provider failure leaves the stored status untouched", t, func() {
		resource := fixtures.GetRefundRequestDB("verified")

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		mockProvider.EXPECT().
			IssueRefund(req.Context(), gomock.Any(), resource.ID).
			Return("", Error, fmt.Errorf("provider timeout"))

		refundRequest, status, err := service.ApproveRefundRequest(req, resource.ID, "ops-123")

		So(refundRequest, ShouldBeNil)
		So(status, ShouldEqual, Error)
		So(err.Error(), ShouldEqual, "error issuing refund with payment provider: [provider timeout]")
	})

	Convey("Losing the transition race after a provider call is a conflict", t, func() {
		resource := fixtures.GetRefundRequestDB("pending_approval")

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		mockProvider.EXPECT().
			IssueRefund(req.Context(), gomock.Any(), resource.ID).
			Return("ext-refund-1", Success, nil)

		mockDao.EXPECT().
			TransitionRefundRequestStatus(resource.ID, []string{"verified", "pending_approval"}, gomock.Any()).
			Return(dao.ErrStatusConflict)

		refundRequest, status, err := service.ApproveRefundRequest(req, resource.ID, "ops-123")

		So(refundRequest, ShouldBeNil)
		So(status, ShouldEqual, Conflict)
		So(err.Error(), ShouldContainSubstring, "error recording approval")
	})

	Convey("Successful approval records the decision and notifies the owner", t, func() {
		resource := fixtures.GetRefundRequestDB("verified")
		resource.Data.Amount = "299.00"

		decided := fixtures.GetRefundRequestDB("approved")
		decided.ID = resource.ID
		decided.Data.Amount = "299.00"
		decided.ExternalRefundID = "ext-refund-1"
		decided.Data.ProcessedBy = "ops-123"

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		mockProvider.EXPECT().
			IssueRefund(req.Context(), gomock.Any(), resource.ID).
			Return("ext-refund-1", Success, nil)

		var update *models.RefundRequestResourceDB
		mockDao.EXPECT().
			TransitionRefundRequestStatus(resource.ID, []string{"verified", "pending_approval"}, gomock.Any()).
			DoAndReturn(func(id string, allowedFrom []string, u *models.RefundRequestResourceDB) error {
				update = u
				return nil
			})

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(decided, nil)

		mockDispatcher.EXPECT().
			Notify(resource.Data.OwnerEmail, NotificationKindApproved, gomock.Any()).
			Return(nil)

		refundRequest, status, err := service.ApproveRefundRequest(req, resource.ID, "ops-123")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(refundRequest.Status, ShouldEqual, "approved")
		So(refundRequest.ExternalRefundID, ShouldEqual, "ext-refund-1")
		So(refundRequest.ProcessedBy, ShouldEqual, "ops-123")
		So(refundRequest.Amount, ShouldEqual, "299.00")
		So(update.ExternalRefundID, ShouldEqual, "ext-refund-1")
		So(update.Data.Status, ShouldEqual, "approved")
		So(update.Data.ProcessedAt, ShouldNotBeNil)
	})
}

func TestUnitRejectRefundRequest(t *testing.T) {
	service, mockDao, _, mockDispatcher, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/test", nil)

	Convey("An already decided request cannot be rejected", t, func() {
		resource := fixtures.GetRefundRequestDB("rejected")

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		refundRequest, status, err := service.RejectRefundRequest(req, resource.ID, "ops-123", "Outside policy window")

		So(refundRequest, ShouldBeNil)
		So(status, ShouldEqual, Conflict)
		So(err.Error(), ShouldEqual, "refund request already decided: status is rejected")
	})

	Convey("Successful rejection records the reason and actor", t, func() {
		resource := fixtures.GetRefundRequestDB("pending_approval")

		decided := fixtures.GetRefundRequestDB("rejected")
		decided.ID = resource.ID
		decided.Data.ProcessedBy = "ops-123"
		decided.Data.RejectionReason = "Outside policy window"

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		var update *models.RefundRequestResourceDB
		mockDao.EXPECT().
			TransitionRefundRequestStatus(resource.ID, []string{"verified", "pending_approval"}, gomock.Any()).
			DoAndReturn(func(id string, allowedFrom []string, u *models.RefundRequestResourceDB) error {
				update = u
				return nil
			})

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(decided, nil)

		mockDispatcher.EXPECT().
			Notify(resource.Data.OwnerEmail, NotificationKindRejected, gomock.Any()).
			Return(nil)

		refundRequest, status, err := service.RejectRefundRequest(req, resource.ID, "ops-123", "Outside policy window")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(refundRequest.Status, ShouldEqual, "rejected")
		So(refundRequest.RejectionReason, ShouldEqual, "Outside policy window")
		So(refundRequest.ProcessedBy, ShouldEqual, "ops-123")
		So(update.Data.Status, ShouldEqual, "rejected")
		So(update.Data.RejectionReason, ShouldEqual, "Outside policy window")
		So(update.ExternalRefundID, ShouldEqual, "")
	})

	Convey("A notification failure does not undo the stored decision", t, func() {
		resource := fixtures.GetRefundRequestDB("verified")

		decided := fixtures.GetRefundRequestDB("rejected")
		decided.ID = resource.ID

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(resource, nil)

		mockDao.EXPECT().
			TransitionRefundRequestStatus(resource.ID, []string{"verified", "pending_approval"}, gomock.Any()).
			Return(nil)

		mockDao.EXPECT().
			GetRefundRequestResource(resource.ID).
			Return(decided, nil)

		mockDispatcher.EXPECT().
			Notify(resource.Data.OwnerEmail, NotificationKindRejected, gomock.Any()).
			Return(fmt.Errorf("smtp unavailable"))

		refundRequest, status, err := service.RejectRefundRequest(req, resource.ID, "ops-123", "Outside policy window")

		So(err, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(refundRequest.Status, ShouldEqual, "rejected")
	})
}

func TestUnitProcessVerifiedRequests(t *testing.T) {
	service, mockDao, _, mockDispatcher, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/test", nil)

	Convey("No verified refund requests found", t, func() {
		mockDao.EXPECT().
			ListRefundRequestResources("verified", "").
			Return(nil, nil)

		processed, status, errs := service.ProcessVerifiedRequests(req)

		So(processed, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(errs, ShouldHaveLength, 1)
		So(errs[0].Error(), ShouldEqual, "no verified refund requests found")
	})

	Convey("Verified requests are queued for approval and owners notified", t, func() {
		resource := fixtures.GetRefundRequestDB("verified")

		mockDao.EXPECT().
			ListRefundRequestResources("verified", "").
			Return([]models.RefundRequestResourceDB{*resource}, nil)

		mockDao.EXPECT().
			TransitionRefundRequestStatus(resource.ID, []string{"verified"}, gomock.Any()).
			Return(nil)

		mockDispatcher.EXPECT().
			Notify(resource.Data.OwnerEmail, NotificationKindReceived, gomock.Any()).
			Return(nil)

		processed, status, errs := service.ProcessVerifiedRequests(req)

		So(errs, ShouldBeEmpty)
		So(status, ShouldEqual, Success)
		So(processed, ShouldHaveLength, 1)
		So(processed[0].Status, ShouldEqual, "pending_approval")
	})
}

func TestUnitProcessExpiredVerifications(t *testing.T) {
	service, mockDao, _, _, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/test", nil)

	Convey("A request still inside the verification window is left alone", t, func() {
		fresh := fixtures.GetRefundRequestDB("pending_verification")

		mockDao.EXPECT().
			ListRefundRequestResources("pending_verification", "").
			Return([]models.RefundRequestResourceDB{*fresh}, nil)

		expired, status, errs := service.ProcessExpiredVerifications(req)

		So(expired, ShouldBeEmpty)
		So(status, ShouldEqual, Success)
		So(errs, ShouldHaveLength, 1)
		So(errs[0].Error(), ShouldEqual, "no refund requests past the verification window")
	})

	Convey("A request past the window is rejected by the system actor", t, func() {
		stale := fixtures.GetRefundRequestDB("pending_verification")
		stale.Data.RequestedAt = time.Now().Add(-25 * time.Hour)

		mockDao.EXPECT().
			ListRefundRequestResources("pending_verification", "").
			Return([]models.RefundRequestResourceDB{*stale}, nil)

		var update *models.RefundRequestResourceDB
		mockDao.EXPECT().
			TransitionRefundRequestStatus(stale.ID, []string{"pending_verification"}, gomock.Any()).
			DoAndReturn(func(id string, allowedFrom []string, u *models.RefundRequestResourceDB) error {
				update = u
				return nil
			})

		expired, status, errs := service.ProcessExpiredVerifications(req)

		So(errs, ShouldBeEmpty)
		So(status, ShouldEqual, Success)
		So(expired, ShouldHaveLength, 1)
		So(expired[0].Status, ShouldEqual, "rejected")
		So(expired[0].RejectionReason, ShouldEqual, "verification window expired")
		So(update.Data.ProcessedBy, ShouldEqual, "system")
	})
}

func TestUnitProcessPendingSettlements(t *testing.T) {
	service, mockDao, mockProvider, _, mockCtrl := reviewServiceFixture(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/test", nil)

	Convey("No approved refund requests found", t, func() {
		mockDao.EXPECT().
			ListRefundRequestResources("approved", "").
			Return(nil, nil)

		processed, status, errs := service.ProcessPendingSettlements(req)

		So(processed, ShouldBeNil)
		So(status, ShouldEqual, Success)
		So(errs, ShouldHaveLength, 1)
		So(errs[0].Error(), ShouldEqual, "no approved refund requests found")
	})

	Convey("Settled refunds are marked processed, unsettled ones left approved", t, func() {
		settled := fixtures.GetRefundRequestDB("approved")
		settled.ExternalRefundID = "ext-refund-1"
		inFlight := fixtures.GetRefundRequestDB("approved")
		inFlight.ID = "a0a1a2a3-0000-1111-2222-333344445555"
		inFlight.ExternalRefundID = "ext-refund-2"

		mockDao.EXPECT().
			ListRefundRequestResources("approved", "").
			Return([]models.RefundRequestResourceDB{*settled, *inFlight}, nil)

		mockProvider.EXPECT().
			CheckRefundStatus(req.Context(), "ext-refund-1").
			Return(&RefundStatus{Settled: true, ProviderStatus: "COMPLETED"}, Success, nil)

		mockProvider.EXPECT().
			CheckRefundStatus(req.Context(), "ext-refund-2").
			Return(&RefundStatus{Settled: false, ProviderStatus: "PENDING"}, Success, nil)

		mockDao.EXPECT().
			TransitionRefundRequestStatus(settled.ID, []string{"approved"}, gomock.Any()).
			Return(nil)

		processed, status, errs := service.ProcessPendingSettlements(req)

		So(errs, ShouldBeEmpty)
		So(status, ShouldEqual, Success)
		So(processed, ShouldHaveLength, 1)
		So(processed[0].ID, ShouldEqual, settled.ID)
		So(processed[0].Status, ShouldEqual, "processed")
	})

	Convey("An approved request without an external refund id is reported", t, func() {
		broken := fixtures.GetRefundRequestDB("approved")

		mockDao.EXPECT().
			ListRefundRequestResources("approved", "").
			Return([]models.RefundRequestResourceDB{*broken}, nil)

		processed, status, errs := service.ProcessPendingSettlements(req)

		So(processed, ShouldBeEmpty)
		So(status, ShouldEqual, Success)
		So(errs, ShouldHaveLength, 1)
		So(errs[0].Error(), ShouldContainSubstring, "has no external refund id")
	})
}
