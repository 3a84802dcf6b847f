package dao

import (
	"context"
	"regexp"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/salonkit/refunds.api.salonkit.io/config"
	"github.com/salonkit/refunds.api.salonkit.io/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	c, err := mongo.Connect(ctx, clientOptions)

	// assume the caller of this func cannot handle the case where there is no
	// database connection so the service must crash here as it cannot do its work
	if err != nil {
		log.Error(err)
		panic(err)
	}

	// check we can connect to the mongodb instance; failure at this point is fatal
	pingContext, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer cancel()
	err = c.Ping(pingContext, nil)
	if err != nil {
		log.Error(err)
		panic(err)
	}

	log.Info("connected to mongodb successfully")

	client = c
	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// NewDAOService creates a new instance of the MongoService backed by the
// configured database and collection
func NewDAOService(cfg *config.Config) *MongoService {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:             database,
		CollectionName: cfg.Collection,
	}
}

// MongoService is a MongoDB implementation of the refund request store
type MongoService struct {
	db             MongoDatabaseInterface
	CollectionName string
}

// CreateRefundRequestResource writes a new refund request to the DB. The
// requested_at timestamp is owned by the store and set here.
func (m *MongoService) CreateRefundRequestResource(refundRequest *models.RefundRequestResourceDB) error {
	refundRequest.Data.RequestedAt = time.Now().Truncate(time.Millisecond)

	collection := m.db.Collection(m.CollectionName)
	_, err := collection.InsertOne(context.Background(), refundRequest)

	return err
}

// GetRefundRequestResource gets a refund request from the DB.
// If the refund request is not found, nil is returned.
func (m *MongoService) GetRefundRequestResource(id string) (*models.RefundRequestResourceDB, error) {
	var resource models.RefundRequestResourceDB

	collection := m.db.Collection(m.CollectionName)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// ListRefundRequestResources returns refund requests matching an optional
// status filter and an optional case-insensitive substring match over salon
// name, owner name and owner email
func (m *MongoService) ListRefundRequestResources(status string, query string) ([]models.RefundRequestResourceDB, error) {
	var resources []models.RefundRequestResourceDB

	filter := bson.M{}
	if status != "" {
		filter["data.status"] = status
	}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"data.salon_name": pattern},
			bson.M{"data.owner_name": pattern},
			bson.M{"data.owner_email": pattern},
		}
	}

	collection := m.db.Collection(m.CollectionName)
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		return nil, err
	}

	err = cursor.All(context.Background(), &resources)
	if err != nil {
		return nil, err
	}

	return resources, nil
}

// TransitionRefundRequestStatus moves a refund request to the status held in
// update, but only if its stored status is still one of allowedFrom at write
// time. The precondition and the write are a single UpdateOne call so a losing
// concurrent transition gets ErrStatusConflict instead of overwriting the
// winner.
func (m *MongoService) TransitionRefundRequestStatus(id string, allowedFrom []string, update *models.RefundRequestResourceDB) error {
	collection := m.db.Collection(m.CollectionName)

	patch := bson.M{"data.status": update.Data.Status}

	// Patch only the append-only fields owned by the transition
	if update.Data.VerifiedAt != nil {
		patch["data.verified_at"] = update.Data.VerifiedAt
	}
	if update.Data.ProcessedAt != nil {
		patch["data.processed_at"] = update.Data.ProcessedAt
	}
	if update.Data.ProcessedBy != "" {
		patch["data.processed_by"] = update.Data.ProcessedBy
	}
	if update.Data.RejectionReason != "" {
		patch["data.rejection_reason"] = update.Data.RejectionReason
	}
	if update.ExternalRefundID != "" {
		patch["external_refund_id"] = update.ExternalRefundID
	}

	filter := bson.M{
		"_id":         id,
		"data.status": bson.M{"$in": allowedFrom},
	}

	result, err := collection.UpdateOne(context.Background(), filter, bson.M{"$set": patch})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		existing, err := m.GetRefundRequestResource(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrRefundRequestNotFound
		}
		return ErrStatusConflict
	}

	return nil
}
