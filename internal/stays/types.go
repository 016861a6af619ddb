package stays

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Host is the denormalized owner snapshot embedded in a stay.
type Host struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname string             `bson:"fullname" json:"fullname"`
	ImgURL   string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
}

// Location places a stay on the map.
type Location struct {
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	Address string `bson:"address" json:"address"`
}

// Review is an embedded sub-document on a stay. The author snapshot is taken
// from the caller at creation time.
type Review struct {
	ID        string       `bson:"id" json:"id"`
	By        ReviewAuthor `bson:"by" json:"by"`
	Txt       string       `bson:"txt" json:"txt"`
	CreatedAt int64        `bson:"createdAt" json:"createdAt"`
}

type ReviewAuthor struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname string             `bson:"fullname" json:"fullname"`
	ImgURL   string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
}

// Stay is a bookable listing owned by a host.
type Stay struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Type           string             `bson:"type" json:"type"`
	Summary        string             `bson:"summary" json:"summary"`
	Price          float64            `bson:"price" json:"price"`
	Capacity       int                `bson:"capacity" json:"capacity"`
	Guests         int                `bson:"guests,omitempty" json:"guests,omitempty"`
	Bedrooms       int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Beds           int                `bson:"beds,omitempty" json:"beds,omitempty"`
	Bathrooms      int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	RoomType       string             `bson:"roomType,omitempty" json:"roomType,omitempty"`
	ImgURLs        []string           `bson:"imgUrls" json:"imgUrls"`
	Loc            Location           `bson:"loc" json:"loc"`
	Amenities      []string           `bson:"amenities" json:"amenities"`
	AvailableFrom  string             `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	AvailableUntil string             `bson:"availableUntil,omitempty" json:"availableUntil,omitempty"`
	Host           Host               `bson:"host" json:"host"`
	Reviews        []Review           `bson:"reviews" json:"reviews"`
	LikedByUsers   []string           `bson:"likedByUsers" json:"likedByUsers"`

	// CreatedAt is derived from the ObjectID's embedded timestamp on reads;
	// it is never stored.
	CreatedAt *time.Time `bson:"-" json:"createdAt,omitempty"`
}

// Draft carries the caller-supplied fields for a new stay. The host is never
// taken from the draft.
type Draft struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Summary        string   `json:"summary"`
	Price          *float64 `json:"price"`
	Capacity       int      `json:"capacity"`
	Guests         int      `json:"guests"`
	Bedrooms       int      `json:"bedrooms"`
	Beds           int      `json:"beds"`
	Bathrooms      int      `json:"bathrooms"`
	RoomType       string   `json:"roomType"`
	ImgURLs        []string `json:"imgUrls"`
	Loc            Location `json:"loc"`
	Amenities      []string `json:"amenities"`
	AvailableFrom  string   `json:"availableFrom"`
	AvailableUntil string   `json:"availableUntil"`
}

// UpdateInput is the mutable surface of a stay. Every field is optional; a nil
// field is left untouched in the stored document, so partial bodies never wipe
// omitted values. Host is accepted on the wire but ignored; the stored host
// always wins.
type UpdateInput struct {
	ID             string    `json:"_id"`
	Name           *string   `json:"name"`
	Type           *string   `json:"type"`
	Summary        *string   `json:"summary"`
	Price          *float64  `json:"price"`
	Capacity       *int      `json:"capacity"`
	Guests         *int      `json:"guests"`
	Bedrooms       *int      `json:"bedrooms"`
	Beds           *int      `json:"beds"`
	Bathrooms      *int      `json:"bathrooms"`
	RoomType       *string   `json:"roomType"`
	ImgURLs        []string  `json:"imgUrls"`
	Loc            *Location `json:"loc"`
	Amenities      []string  `json:"amenities"`
	AvailableFrom  *string   `json:"availableFrom"`
	AvailableUntil *string   `json:"availableUntil"`
	Reviews        []Review  `json:"reviews"`
	LikedByUsers   []string  `json:"likedByUsers"`
}

// DateRange is a suggested booking window derived from availability.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the listing projection returned by Query.
type Summary struct {
	ID             primitive.ObjectID `json:"_id"`
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	ImgURLs        []string           `json:"imgUrls"`
	Price          float64            `json:"price"`
	Summary        string             `json:"summary"`
	Capacity       int                `json:"capacity"`
	Bathrooms      int                `json:"bathrooms,omitempty"`
	Bedrooms       int                `json:"bedrooms,omitempty"`
	Beds           int                `json:"beds,omitempty"`
	RoomType       string             `json:"roomType,omitempty"`
	AvailableFrom  string             `json:"availableFrom,omitempty"`
	AvailableUntil string             `json:"availableUntil,omitempty"`
	Host           Host               `json:"host"`
	Loc            Location           `json:"loc"`
	Reviews        []Review           `json:"reviews"`
	LikedByUsers   []string           `json:"likedByUsers"`
	SuggestedRange *DateRange         `json:"suggestedRange,omitempty"`
}
