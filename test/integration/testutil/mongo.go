package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultDatabaseName      = "prebook"
	ConnectionTimeout        = 10 * time.Second
	ScheduledRidesCollection = "ScheduledRides"
)

// MongoHelper provides access to the remote mirror for assertions.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	if mongoURI == "" {
		mongoURI = DefaultMongoURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping mongo: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if err := m.Database.Collection(ScheduledRidesCollection).Drop(ctx); err != nil {
		t.Fatalf("failed to drop collection: %v", err)
	}
}

// MirrorStatus reads a ride's status straight from the mirror collection.
func (m *MongoHelper) MirrorStatus(t *testing.T, rideID string) (string, bool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	var doc struct {
		Status string `bson:"status"`
	}
	err := m.Database.Collection(ScheduledRidesCollection).
		FindOne(ctx, bson.M{"_id": rideID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false
	}
	if err != nil {
		t.Fatalf("failed to read mirror record: %v", err)
	}
	return doc.Status, true
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Fatalf("failed to disconnect mongo: %v", err)
	}
}
