package orders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/pkg/mongodb"
)

// Store is the persistence surface the order service depends on.
type Store interface {
	Query(ctx context.Context, criteria bson.M) ([]Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (Order, error)
	Insert(ctx context.Context, order Order) (primitive.ObjectID, error)
	Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, criteria bson.M) (int64, error)
}

// Repository encapsulates order persistence on Mongo.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository constructs an order repository bound to the provided client.
func NewRepository(client *mongodb.Client) *Repository {
	return &Repository{collection: client.Collection(mongodb.CollectionOrder)}
}

// Query returns orders matching the criteria.
func (r *Repository) Query(ctx context.Context, criteria bson.M) ([]Order, error) {
	cursor, err := r.collection.Find(ctx, criteria)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID loads a single order. Returns mongo.ErrNoDocuments when absent.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (Order, error) {
	var order Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return order, err
}

// Insert persists a new order and returns its generated id.
func (r *Repository) Insert(ctx context.Context, order Order) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Set applies a partial update to the order document.
func (r *Repository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes orders matching the criteria and reports how many went.
func (r *Repository) Delete(ctx context.Context, criteria bson.M) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
