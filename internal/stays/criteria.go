package stays

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter carries the listing query parameters. Zero values mean "not set".
type Filter struct {
	Txt       string
	MinPrice  float64
	Type      string
	City      string
	Guests    int
	SortField string
	SortDir   int
	PageIdx   *int
}

const pageSize = 20

// buildCriteria translates a filter into a Mongo criteria document. A free-text
// term matches case-insensitively across the name, summary and location fields.
func buildCriteria(f Filter) bson.M {
	criteria := bson.M{}

	if f.Txt != "" {
		re := primitive.Regex{Pattern: f.Txt, Options: "i"}
		criteria["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"summary": re},
			bson.M{"loc.city": re},
			bson.M{"loc.country": re},
			bson.M{"loc.address": re},
		}
	}
	if f.MinPrice > 0 {
		criteria["price"] = bson.M{"$gte": f.MinPrice}
	}
	if f.Type != "" {
		criteria["type"] = f.Type
	}
	if f.City != "" {
		criteria["loc.city"] = primitive.Regex{Pattern: f.City, Options: "i"}
	}
	if f.Guests > 0 {
		criteria["capacity"] = bson.M{"$gte": f.Guests}
	}
	return criteria
}

// buildSort orders results by the requested field. Direction defaults to
// ascending; anything negative flips it.
func buildSort(field string, dir int) bson.D {
	if field == "" {
		return nil
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}
