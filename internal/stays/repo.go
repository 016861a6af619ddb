package stays

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staybnb/staybnb-backend/pkg/mongodb"
)

// Store is the persistence surface the stay service depends on.
type Store interface {
	Query(ctx context.Context, criteria bson.M, sort bson.D, pageIdx *int) ([]Stay, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (Stay, error)
	Insert(ctx context.Context, stay Stay) (primitive.ObjectID, error)
	Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, criteria bson.M) (int64, error)
	PushReview(ctx context.Context, stayID primitive.ObjectID, review Review) error
	PullReview(ctx context.Context, criteria bson.M, reviewID string) (int64, error)
}

// Repository encapsulates stay persistence on Mongo.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository constructs a stay repository bound to the provided client.
func NewRepository(client *mongodb.Client) *Repository {
	return &Repository{collection: client.Collection(mongodb.CollectionStay)}
}

// Query returns stays matching the criteria. A nil pageIdx returns the whole
// result set; otherwise results are windowed to the requested page.
func (r *Repository) Query(ctx context.Context, criteria bson.M, sort bson.D, pageIdx *int) ([]Stay, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	if pageIdx != nil {
		opts.SetSkip(int64(*pageIdx) * pageSize)
		opts.SetLimit(pageSize)
	}

	cursor, err := r.collection.Find(ctx, criteria, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stays := []Stay{}
	if err := cursor.All(ctx, &stays); err != nil {
		return nil, err
	}
	return stays, nil
}

// GetByID loads a single stay. Returns mongo.ErrNoDocuments when absent.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (Stay, error) {
	var stay Stay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stay)
	return stay, err
}

// Insert persists a new stay and returns its generated id.
func (r *Repository) Insert(ctx context.Context, stay Stay) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, stay)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Set applies a partial update to the stay document.
func (r *Repository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes stays matching the criteria and reports how many went.
func (r *Repository) Delete(ctx context.Context, criteria bson.M) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// PushReview appends a review sub-document to the stay.
func (r *Repository) PushReview(ctx context.Context, stayID primitive.ObjectID, review Review) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": stayID},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	return err
}

// PullReview removes the review with the given id from whichever stay matches
// the criteria, reporting how many documents changed.
func (r *Repository) PullReview(ctx context.Context, criteria bson.M, reviewID string) (int64, error) {
	result, err := r.collection.UpdateOne(ctx,
		criteria,
		bson.M{"$pull": bson.M{"reviews": bson.M{"id": reviewID}}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
