package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

// MongoDBRepository persists confirmed route decisions.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "route_decisions",
	}, nil
}

// SaveDecision inserts a confirmed decision.
func (r *MongoDBRepository) SaveDecision(ctx context.Context, decision models.RouteDecision) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, decision); err != nil {
		return fmt.Errorf("failed to insert route decision: %w", err)
	}
	return nil
}

// ListDecisions returns up to limit decisions, newest first.
func (r *MongoDBRepository) ListDecisions(ctx context.Context, limit int64) ([]models.RouteDecision, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query route decisions: %w", err)
	}
	defer cursor.Close(ctx)

	var decisions []models.RouteDecision
	if err := cursor.All(ctx, &decisions); err != nil {
		return nil, fmt.Errorf("failed to decode route decisions: %w", err)
	}
	return decisions, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
