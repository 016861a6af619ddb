package orders

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPending is the initial state of every booking.
const StatusPending = "pending"

// UserRef is the denormalized person snapshot embedded on both sides of an
// order. Password should never survive persistence; sanitize clears it when a
// client smuggles one in through a snapshot.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname string             `bson:"fullname" json:"fullname"`
	ImgURL   string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
	Password string             `bson:"password,omitempty" json:"password,omitempty"`
}

func (u UserRef) sanitized() UserRef {
	u.Password = ""
	return u
}

// StayRef is the listing snapshot frozen into the order at booking time.
type StayRef struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Price  float64            `bson:"price" json:"price"`
	ImgURL string             `bson:"imgUrl,omitempty" json:"imgUrl,omitempty"`
}

// Message is a chat entry between guest and host on an order.
type Message struct {
	ID   string `bson:"id" json:"id"`
	From string `bson:"from" json:"from"`
	Txt  string `bson:"txt" json:"txt"`
	At   int64  `bson:"at" json:"at"`
}

// Order is a booking of a stay by a guest.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Host          UserRef            `bson:"host" json:"host"`
	Guest         UserRef            `bson:"guest" json:"guest"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	PricePerNight float64            `bson:"pricePerNight" json:"pricePerNight"`
	CleaningFee   float64            `bson:"cleaningFee" json:"cleaningFee"`
	ServiceFee    float64            `bson:"serviceFee" json:"serviceFee"`
	NumNights     int                `bson:"numNights" json:"numNights"`
	StartDate     string             `bson:"startDate" json:"startDate"`
	EndDate       string             `bson:"endDate" json:"endDate"`
	Guests        int                `bson:"guests" json:"guests"`
	Stay          StayRef            `bson:"stay" json:"stay"`
	Msgs          []Message          `bson:"msgs" json:"msgs"`
	Status        string             `bson:"status" json:"status"`
	BookedAt      string             `bson:"bookedAt" json:"bookedAt"`

	// CreatedAt is derived from the ObjectID on reads, never stored.
	CreatedAt *time.Time `bson:"-" json:"createdAt,omitempty"`
}

// Draft carries the caller-supplied fields for a new booking. The guest side
// is always taken from the caller, never from the draft.
type Draft struct {
	Host          UserRef  `json:"host"`
	TotalPrice    *float64 `json:"totalPrice"`
	PricePerNight float64  `json:"pricePerNight"`
	CleaningFee   float64  `json:"cleaningFee"`
	ServiceFee    float64  `json:"serviceFee"`
	NumNights     int      `json:"numNights"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Guests        int      `json:"guests"`
	Stay          StayRef  `json:"stay"`
}

// UpdateInput replaces the mutable business fields of an order wholesale.
type UpdateInput struct {
	ID            string    `json:"_id"`
	Host          UserRef   `json:"host"`
	Guest         UserRef   `json:"guest"`
	TotalPrice    float64   `json:"totalPrice"`
	PricePerNight float64   `json:"pricePerNight"`
	CleaningFee   float64   `json:"cleaningFee"`
	ServiceFee    float64   `json:"serviceFee"`
	NumNights     int       `json:"numNights"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Guests        int       `json:"guests"`
	Stay          StayRef   `json:"stay"`
	Msgs          []Message `json:"msgs"`
	Status        string    `json:"status"`
	BookedAt      string    `json:"bookedAt"`
}
