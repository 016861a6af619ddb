package orders

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staybnb/staybnb-backend/internal/identity"
)

// Filter carries the order query parameters. Zero values mean "not set".
type Filter struct {
	HostID        string
	GuestID       string
	StayID        string
	Status        string
	TotalPriceMin float64
	TotalPriceMax float64
	StartDate     string
	EndDate       string
}

// buildCriteria translates a filter into a Mongo criteria document. A
// non-admin caller is always pinned to orders they take part in, on either
// side of the booking.
func buildCriteria(caller identity.Caller, f Filter) bson.M {
	criteria := bson.M{}

	if !caller.IsAdmin {
		criteria["$or"] = bson.A{
			bson.M{"guest._id": caller.ID},
			bson.M{"host._id": caller.ID},
		}
	}
	if id, err := primitive.ObjectIDFromHex(f.HostID); err == nil {
		criteria["host._id"] = id
	}
	if id, err := primitive.ObjectIDFromHex(f.GuestID); err == nil {
		criteria["guest._id"] = id
	}
	if id, err := primitive.ObjectIDFromHex(f.StayID); err == nil {
		criteria["stay._id"] = id
	}
	if f.Status != "" {
		criteria["status"] = f.Status
	}
	if priceRange := buildPriceRange(f); len(priceRange) > 0 {
		criteria["totalPrice"] = priceRange
	}
	if f.StartDate != "" {
		criteria["startDate"] = bson.M{"$gte": f.StartDate}
	}
	if f.EndDate != "" {
		criteria["endDate"] = bson.M{"$lte": f.EndDate}
	}
	return criteria
}

// buildPriceRange merges min and max onto one key so they AND together
// instead of the later bound clobbering the earlier one.
func buildPriceRange(f Filter) bson.M {
	bounds := bson.M{}
	if f.TotalPriceMin > 0 {
		bounds["$gte"] = f.TotalPriceMin
	}
	if f.TotalPriceMax > 0 {
		bounds["$lte"] = f.TotalPriceMax
	}
	return bounds
}
