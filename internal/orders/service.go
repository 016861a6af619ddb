package orders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/internal/identity"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo Store
	Logg *logger.Logger

	// Now lets tests pin the clock; defaults to time.Now.
	Now func() time.Time
}

// Service exposes business rules for booking management.
type Service interface {
	Query(ctx context.Context, caller identity.Caller, filter Filter) ([]Order, error)
	GetByID(ctx context.Context, caller identity.Caller, id string) (Order, error)
	Add(ctx context.Context, caller identity.Caller, draft Draft) (Order, error)
	Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Order, error)
	Remove(ctx context.Context, caller identity.Caller, id string) error
}

type service struct {
	repo Store
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.Logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logg, now: now}, nil
}

// Query lists the caller's orders. Admins see everything the filter matches;
// everyone else only sees bookings they take part in.
func (s *service) Query(ctx context.Context, caller identity.Caller, filter Filter) ([]Order, error) {
	if caller.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view orders")
	}

	orders, err := s.repo.Query(ctx, buildCriteria(caller, filter))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query orders")
	}
	for i := range orders {
		sanitize(&orders[i])
		attachCreatedAt(&orders[i])
	}
	return orders, nil
}

// GetByID loads a single order the caller is allowed to see.
func (s *service) GetByID(ctx context.Context, caller identity.Caller, id string) (Order, error) {
	if caller.IsZero() {
		return Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view an order")
	}
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !isParticipant(caller, order) {
		return Order{}, pkgerrors.New(pkgerrors.CodeForbidden, "order is not yours to view")
	}
	sanitize(&order)
	attachCreatedAt(&order)
	return order, nil
}

// Add books a stay for the caller. The guest side is always the caller's own
// snapshot; whatever the draft claims about the guest is discarded.
func (s *service) Add(ctx context.Context, caller identity.Caller, draft Draft) (Order, error) {
	if caller.IsZero() {
		return Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to book a stay")
	}
	if draft.TotalPrice == nil || *draft.TotalPrice <= 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "total price is required")
	}
	if draft.Stay.ID.IsZero() {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "stay is required")
	}
	if draft.Host.ID.IsZero() {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "host is required")
	}
	if draft.StartDate == "" || draft.EndDate == "" {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}

	order := Order{
		Host: draft.Host.sanitized(),
		Guest: UserRef{
			ID:       caller.ID,
			Fullname: caller.Fullname,
			ImgURL:   caller.ImgURL,
		},
		TotalPrice:    *draft.TotalPrice,
		PricePerNight: draft.PricePerNight,
		CleaningFee:   draft.CleaningFee,
		ServiceFee:    draft.ServiceFee,
		NumNights:     draft.NumNights,
		StartDate:     draft.StartDate,
		EndDate:       draft.EndDate,
		Guests:        draft.Guests,
		Stay:          draft.Stay,
		Msgs:          []Message{},
		Status:        StatusPending,
		BookedAt:      s.now().Format("2006-01-02"),
	}

	id, err := s.repo.Insert(ctx, order)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
	}
	order.ID = id
	attachCreatedAt(&order)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": id.Hex(),
		"guest_id": caller.ID.Hex(),
		"stay_id":  order.Stay.ID.Hex(),
	}), "order created")

	return order, nil
}

// Update replaces the mutable fields of an order wholesale. Only a
// participant or an admin may update, and both person snapshots are
// re-sanitized on the way in. Identical bodies are idempotent.
func (s *service) Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Order, error) {
	if caller.IsZero() {
		return Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update an order")
	}
	orderID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}

	existing, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !isParticipant(caller, existing) {
		return Order{}, pkgerrors.New(pkgerrors.CodeForbidden, "order is not yours to update")
	}

	fields := bson.M{
		"host":          input.Host.sanitized(),
		"guest":         input.Guest.sanitized(),
		"totalPrice":    input.TotalPrice,
		"pricePerNight": input.PricePerNight,
		"cleaningFee":   input.CleaningFee,
		"serviceFee":    input.ServiceFee,
		"numNights":     input.NumNights,
		"startDate":     input.StartDate,
		"endDate":       input.EndDate,
		"guests":        input.Guests,
		"stay":          input.Stay,
		"msgs":          ensureMsgs(input.Msgs),
		"status":        input.Status,
		"bookedAt":      input.BookedAt,
	}
	if err := s.repo.Set(ctx, orderID, fields); err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	updated, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	sanitize(&updated)
	attachCreatedAt(&updated)
	return updated, nil
}

// Remove cancels a booking. Only the guest who made it, or an admin, may
// delete; the check rides in the delete criteria.
func (s *service) Remove(ctx context.Context, caller identity.Caller, id string) error {
	if caller.IsZero() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to remove an order")
	}
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}

	criteria := bson.M{"_id": orderID}
	if !caller.IsAdmin {
		criteria["guest._id"] = caller.ID
	}

	deleted, err := s.repo.Delete(ctx, criteria)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order is not yours to remove")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", orderID.Hex()), "order removed")
	return nil
}

// isParticipant reports whether the caller may see or mutate the order.
func isParticipant(caller identity.Caller, order Order) bool {
	return caller.IsAdmin || caller.Is(order.Guest.ID) || caller.Is(order.Host.ID)
}

// sanitize strips credentials that may ride along in embedded snapshots.
func sanitize(order *Order) {
	order.Guest = order.Guest.sanitized()
	order.Host = order.Host.sanitized()
	if order.Msgs == nil {
		order.Msgs = []Message{}
	}
}

func attachCreatedAt(order *Order) {
	if order.ID.IsZero() {
		return
	}
	createdAt := order.ID.Timestamp()
	order.CreatedAt = &createdAt
}

func ensureMsgs(msgs []Message) []Message {
	if msgs == nil {
		return []Message{}
	}
	return msgs
}
