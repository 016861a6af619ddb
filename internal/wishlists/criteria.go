package wishlists

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staybnb/staybnb-backend/internal/identity"
)

// Filter carries the wishlist query parameters.
type Filter struct {
	UserID string
}

// buildCriteria scopes the listing. A signed-in non-admin only ever sees
// their own wishlists; admins and anonymous readers may scope by an explicit
// user id instead.
func buildCriteria(caller identity.Caller, f Filter) bson.M {
	criteria := bson.M{}

	if !caller.IsZero() && !caller.IsAdmin {
		criteria["byUser._id"] = caller.ID
		return criteria
	}
	if id, err := primitive.ObjectIDFromHex(f.UserID); err == nil {
		criteria["byUser._id"] = id
	}
	return criteria
}
