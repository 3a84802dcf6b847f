package dao

import (
	"testing"
	"time"

	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/models"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func ptr(t time.Time) *time.Time {
	return &t
}

func setDriverUp() (MongoService, mtest.CommandError, *mtest.Options, models.RefundRequestResourceDB) {
	cfg, _ := config.Get()

	mongoService := MongoService{
		CollectionName: cfg.Collection,
	}

	commandError := mtest.CommandError{
		Code:    1,
		Message: "Message",
		Name:    "Name",
		Labels:  []string{"label1"},
	}

	refundRequest := models.RefundRequestResourceDB{
		ID: "2f78cc51-06f6-47f6-a701-2c6f8cb0ed66",
		Data: models.RefundRequestDataDB{
			SalonID:       "salon-1",
			SalonName:     "Shear Bliss",
			OwnerName:     "Dana Vella",
			OwnerEmail:    "owner@shearbliss.com",
			Amount:        "99.00",
			PaymentDate:   time.Now().AddDate(0, 0, -5),
			PaymentMethod: "visa **** 4242",
			Reason:        "No longer using the platform",
			Status:        "pending_verification",
			Kind:          "refund-request#refund-request",
		},
	}

	opts := mtest.NewOptions().DatabaseName("databaseName").ClientType(mtest.Mock)

	return mongoService, commandError, opts, refundRequest
}

func TestUnitCreateRefundRequestResourceDriver(t *testing.T) {
	t.Parallel()

	mongoService, commandError, opts, refundRequest := setDriverUp()

	mt := mtest.New(t, opts)
	defer mt.Close()

	mt.Run("CreateRefundRequestResource runs successfully", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		mongoService.db = mt.DB

		err := mongoService.CreateRefundRequestResource(&refundRequest)

		assert.Nil(t, err)
		assert.False(t, refundRequest.Data.RequestedAt.IsZero())
	})

	mt.Run("CreateRefundRequestResource runs with error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(commandError))

		mongoService.db = mt.DB

		err := mongoService.CreateRefundRequestResource(&refundRequest)

		assert.NotNil(t, err)
	})
}

func TestUnitGetRefundRequestResourceDriver(t *testing.T) {
	t.Parallel()

	mongoService, commandError, opts, refundRequest := setDriverUp()

	mt := mtest.New(t, opts)
	defer mt.Close()

	mt.Run("GetRefundRequestResource runs successfully", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "databaseName.refund_requests", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: refundRequest.ID},
			{Key: "data", Value: bson.D{
				{Key: "salon_id", Value: refundRequest.Data.SalonID},
				{Key: "status", Value: refundRequest.Data.Status},
			}},
		}))

		mongoService.db = mt.DB

		resource, err := mongoService.GetRefundRequestResource(refundRequest.ID)

		assert.Nil(t, err)
		assert.NotNil(t, resource)
		assert.Equal(t, refundRequest.ID, resource.ID)
		assert.Equal(t, refundRequest.Data.Status, resource.Data.Status)
	})

	mt.Run("GetRefundRequestResource returns nil when not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "databaseName.refund_requests", mtest.FirstBatch))

		mongoService.db = mt.DB

		resource, err := mongoService.GetRefundRequestResource("missing")

		assert.Nil(t, err)
		assert.Nil(t, resource)
	})

	mt.Run("GetRefundRequestResource runs with error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(commandError))

		mongoService.db = mt.DB

		resource, err := mongoService.GetRefundRequestResource(refundRequest.ID)

		assert.NotNil(t, err)
		assert.Nil(t, resource)
	})
}

func TestUnitListRefundRequestResourcesDriver(t *testing.T) {
	t.Parallel()

	mongoService, commandError, opts, refundRequest := setDriverUp()

	mt := mtest.New(t, opts)
	defer mt.Close()

	mt.Run("ListRefundRequestResources runs successfully", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, "databaseName.refund_requests", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: refundRequest.ID},
			{Key: "data", Value: bson.D{
				{Key: "salon_name", Value: refundRequest.Data.SalonName},
				{Key: "status", Value: refundRequest.Data.Status},
			}},
		})
		killCursors := mtest.CreateCursorResponse(0, "databaseName.refund_requests", mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		mongoService.db = mt.DB

		resources, err := mongoService.ListRefundRequestResources("pending_verification", "shear")

		assert.Nil(t, err)
		assert.Len(t, resources, 1)
		assert.Equal(t, refundRequest.Data.SalonName, resources[0].Data.SalonName)
	})

	mt.Run("ListRefundRequestResources runs with error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(commandError))

		mongoService.db = mt.DB

		resources, err := mongoService.ListRefundRequestResources("", "")

		assert.NotNil(t, err)
		assert.Nil(t, resources)
	})
}

func TestUnitTransitionRefundRequestStatusDriver(t *testing.T) {
	t.Parallel()

	mongoService, commandError, opts, refundRequest := setDriverUp()

	mt := mtest.New(t, opts)
	defer mt.Close()

	now := time.Now()
	update := &models.RefundRequestResourceDB{
		ExternalRefundID: "8PK54321XY123456B",
		Data: models.RefundRequestDataDB{
			Status:      "approved",
			ProcessedAt: ptr(now),
			ProcessedBy: "operator@salonkit.io",
		},
	}

	mt.Run("TransitionRefundRequestStatus runs successfully", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		mongoService.db = mt.DB

		err := mongoService.TransitionRefundRequestStatus(refundRequest.ID, []string{"verified", "pending_approval"}, update)

		assert.Nil(t, err)
	})

	mt.Run("TransitionRefundRequestStatus returns conflict when status precondition misses", func(mt *mtest.T) {
		noMatch := bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		}
		existing := mtest.CreateCursorResponse(1, "databaseName.refund_requests", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: refundRequest.ID},
			{Key: "data", Value: bson.D{{Key: "status", Value: "rejected"}}},
		})
		mt.AddMockResponses(noMatch, existing)

		mongoService.db = mt.DB

		err := mongoService.TransitionRefundRequestStatus(refundRequest.ID, []string{"verified", "pending_approval"}, update)

		assert.Equal(t, ErrStatusConflict, err)
	})

	mt.Run("TransitionRefundRequestStatus returns not found for an unknown id", func(mt *mtest.T) {
		noMatch := bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		}
		missing := mtest.CreateCursorResponse(0, "databaseName.refund_requests", mtest.FirstBatch)
		mt.AddMockResponses(noMatch, missing)

		mongoService.db = mt.DB

		err := mongoService.TransitionRefundRequestStatus("missing", []string{"verified"}, update)

		assert.Equal(t, ErrRefundRequestNotFound, err)
	})

	mt.Run("TransitionRefundRequestStatus runs with error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(commandError))

		mongoService.db = mt.DB

		err := mongoService.TransitionRefundRequestStatus(refundRequest.ID, []string{"verified"}, update)

		assert.NotNil(t, err)
	})
}
