package wishlists

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner is the denormalized user snapshot a wishlist belongs to.
type Owner struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname string             `bson:"fullname" json:"fullname"`
}

// Wishlist is a user-curated collection of stay ids.
type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	ByUser    Owner              `bson:"byUser" json:"byUser"`
	Stays     []string           `bson:"stays" json:"stays"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}

// Draft carries the caller-supplied fields for a new wishlist. Ownership and
// timestamps are always server-set.
type Draft struct {
	Title   string   `json:"title"`
	Stays   []string `json:"stays"`
	City    string   `json:"city"`
	Country string   `json:"country"`
}

// UpdateInput is the mutable surface of a wishlist. Nil fields are left
// untouched so a partial body never wipes omitted values.
type UpdateInput struct {
	ID      string   `json:"_id"`
	Title   *string  `json:"title"`
	Stays   []string `json:"stays"`
	City    *string  `json:"city"`
	Country *string  `json:"country"`
	ByUser  *Owner   `json:"byUser"`
}
