package identity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caller is the resolved identity behind a request. A zero Caller means the
// request is anonymous. Services receive the caller explicitly on every
// operation instead of reading ambient state, so identity can never leak
// across requests.
type Caller struct {
	ID       primitive.ObjectID
	Fullname string
	ImgURL   string
	IsAdmin  bool
}

// IsZero reports whether the caller is anonymous.
func (c Caller) IsZero() bool {
	return c.ID.IsZero()
}

// Is reports whether the caller owns the given identity id.
func (c Caller) Is(id primitive.ObjectID) bool {
	return !c.ID.IsZero() && c.ID == id
}
