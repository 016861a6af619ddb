package wishlists

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/pkg/mongodb"
)

// Store is the persistence surface the wishlist service depends on.
type Store interface {
	Query(ctx context.Context, criteria bson.M) ([]Wishlist, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (Wishlist, error)
	Insert(ctx context.Context, wishlist Wishlist) (primitive.ObjectID, error)
	Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, criteria bson.M) (int64, error)
	PushStay(ctx context.Context, id primitive.ObjectID, stayID string, updatedAt int64) error
	PullStay(ctx context.Context, id primitive.ObjectID, stayID string, updatedAt int64) (int64, error)
}

// Repository encapsulates wishlist persistence on Mongo.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository constructs a wishlist repository bound to the provided client.
func NewRepository(client *mongodb.Client) *Repository {
	return &Repository{collection: client.Collection(mongodb.CollectionWishlist)}
}

// Query returns wishlists matching the criteria.
func (r *Repository) Query(ctx context.Context, criteria bson.M) ([]Wishlist, error) {
	cursor, err := r.collection.Find(ctx, criteria)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	wishlists := []Wishlist{}
	if err := cursor.All(ctx, &wishlists); err != nil {
		return nil, err
	}
	return wishlists, nil
}

// GetByID loads a single wishlist. Returns mongo.ErrNoDocuments when absent.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (Wishlist, error) {
	var wishlist Wishlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wishlist)
	return wishlist, err
}

// Insert persists a new wishlist and returns its generated id.
func (r *Repository) Insert(ctx context.Context, wishlist Wishlist) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, wishlist)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Set applies a partial update to the wishlist document.
func (r *Repository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes wishlists matching the criteria and reports how many went.
func (r *Repository) Delete(ctx context.Context, criteria bson.M) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// PushStay appends a stay id and bumps the update stamp in one operation.
func (r *Repository) PushStay(ctx context.Context, id primitive.ObjectID, stayID string, updatedAt int64) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"stays": stayID},
			"$set":  bson.M{"updatedAt": updatedAt},
		},
	)
	return err
}

// PullStay removes a stay id, bumps the update stamp, and reports whether the
// stay was actually on the list.
func (r *Repository) PullStay(ctx context.Context, id primitive.ObjectID, stayID string, updatedAt int64) (int64, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stays": stayID},
		bson.M{
			"$pull": bson.M{"stays": stayID},
			"$set":  bson.M{"updatedAt": updatedAt},
		},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
