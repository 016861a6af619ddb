package stays

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/internal/identity"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

const (
	defaultName     = "Untitled Stay"
	defaultType     = "House"
	defaultCapacity = 1
)

// ServiceParams groups dependencies for the stay service.
type ServiceParams struct {
	Repo Store
	Logg *logger.Logger
}

// Service exposes business rules for stay management.
type Service interface {
	Query(ctx context.Context, filter Filter) ([]Summary, error)
	GetByID(ctx context.Context, id string) (Stay, error)
	Add(ctx context.Context, caller identity.Caller, draft Draft) (Stay, error)
	Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Stay, error)
	Remove(ctx context.Context, caller identity.Caller, id string) error
	AddReview(ctx context.Context, caller identity.Caller, stayID, txt string) (Review, error)
	RemoveReview(ctx context.Context, caller identity.Caller, stayID, reviewID string) error
}

type service struct {
	repo Store
	logg *logger.Logger
}

// NewService builds a stay service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stay repo is required")
	}
	if params.Logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logg}, nil
}

// Query lists stays matching the filter as summaries. No authentication is
// required; listings are public.
func (s *service) Query(ctx context.Context, filter Filter) ([]Summary, error) {
	criteria := buildCriteria(filter)
	sort := buildSort(filter.SortField, filter.SortDir)

	stays, err := s.repo.Query(ctx, criteria, sort, filter.PageIdx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query stays")
	}

	summaries := make([]Summary, 0, len(stays))
	for _, stay := range stays {
		summaries = append(summaries, toSummary(stay))
	}
	return summaries, nil
}

// GetByID loads a single stay with its derived creation time. A malformed id
// reads the same as an absent one.
func (s *service) GetByID(ctx context.Context, id string) (Stay, error) {
	stayID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "stay not found")
	}
	stay, err := s.repo.GetByID(ctx, stayID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Stay{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "stay not found")
		}
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stay")
	}
	attachCreatedAt(&stay)
	return stay, nil
}

// Add creates a stay owned by the caller. Price is the only mandatory field;
// everything else falls back to sensible defaults.
func (s *service) Add(ctx context.Context, caller identity.Caller, draft Draft) (Stay, error) {
	if caller.IsZero() {
		return Stay{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to add a stay")
	}
	if draft.Price == nil || *draft.Price <= 0 {
		return Stay{}, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}

	stay := Stay{
		Name:           draft.Name,
		Type:           draft.Type,
		Summary:        draft.Summary,
		Price:          *draft.Price,
		Capacity:       draft.Capacity,
		Guests:         draft.Guests,
		Bedrooms:       draft.Bedrooms,
		Beds:           draft.Beds,
		Bathrooms:      draft.Bathrooms,
		RoomType:       draft.RoomType,
		ImgURLs:        ensureSlice(draft.ImgURLs),
		Loc:            draft.Loc,
		Amenities:      ensureSlice(draft.Amenities),
		AvailableFrom:  draft.AvailableFrom,
		AvailableUntil: draft.AvailableUntil,
		Host: Host{
			ID:       caller.ID,
			Fullname: caller.Fullname,
			ImgURL:   caller.ImgURL,
		},
		Reviews:      []Review{},
		LikedByUsers: []string{},
	}
	if stay.Name == "" {
		stay.Name = defaultName
	}
	if stay.Type == "" {
		stay.Type = defaultType
	}
	if stay.Capacity == 0 {
		stay.Capacity = draft.Guests
	}
	if stay.Capacity == 0 {
		stay.Capacity = defaultCapacity
	}
	if stay.Bedrooms == 0 {
		stay.Bedrooms = 1
	}
	if stay.Beds == 0 {
		stay.Beds = 1
	}
	if stay.Bathrooms == 0 {
		stay.Bathrooms = 1
	}

	id, err := s.repo.Insert(ctx, stay)
	if err != nil {
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert stay")
	}
	stay.ID = id
	attachCreatedAt(&stay)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"stay_id": id.Hex(),
		"host_id": caller.ID.Hex(),
	}), "stay created")

	return stay, nil
}

// Update merges the supplied fields into a stay; omitted fields are left
// alone. Only the host or an admin may update, and ownership can never be
// reassigned.
func (s *service) Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Stay, error) {
	if caller.IsZero() {
		return Stay{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update a stay")
	}
	stayID, err := parseID(input.ID, "stay id")
	if err != nil {
		return Stay{}, err
	}
	if input.Price != nil && *input.Price <= 0 {
		return Stay{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	existing, err := s.repo.GetByID(ctx, stayID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Stay{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "stay not found")
		}
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stay")
	}
	if !canManageStay(caller, existing) {
		return Stay{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the host may update this stay")
	}

	// Only keys present in the body are written; omitted fields keep their
	// stored value. The client-supplied host never reaches the $set, so
	// ownership is immutable.
	fields := bson.M{}
	setString(fields, "name", input.Name)
	setString(fields, "type", input.Type)
	setString(fields, "summary", input.Summary)
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	setInt(fields, "capacity", input.Capacity)
	setInt(fields, "guests", input.Guests)
	setInt(fields, "bedrooms", input.Bedrooms)
	setInt(fields, "beds", input.Beds)
	setInt(fields, "bathrooms", input.Bathrooms)
	setString(fields, "roomType", input.RoomType)
	if input.ImgURLs != nil {
		fields["imgUrls"] = input.ImgURLs
	}
	if input.Loc != nil {
		fields["loc"] = *input.Loc
	}
	if input.Amenities != nil {
		fields["amenities"] = input.Amenities
	}
	setString(fields, "availableFrom", input.AvailableFrom)
	setString(fields, "availableUntil", input.AvailableUntil)
	if input.Reviews != nil {
		fields["reviews"] = input.Reviews
	}
	if input.LikedByUsers != nil {
		fields["likedByUsers"] = input.LikedByUsers
	}

	if len(fields) == 0 {
		attachCreatedAt(&existing)
		return existing, nil
	}
	if err := s.repo.Set(ctx, stayID, fields); err != nil {
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stay")
	}

	updated, err := s.repo.GetByID(ctx, stayID)
	if err != nil {
		return Stay{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload stay")
	}
	attachCreatedAt(&updated)
	return updated, nil
}

// Remove deletes a stay. Non-admin callers can only delete stays they host;
// the ownership check is folded into the delete criteria so a mismatch and a
// missing stay are indistinguishable.
func (s *service) Remove(ctx context.Context, caller identity.Caller, id string) error {
	if caller.IsZero() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to remove a stay")
	}
	stayID, err := parseID(id, "stay id")
	if err != nil {
		return err
	}

	criteria := bson.M{"_id": stayID}
	if !caller.IsAdmin {
		criteria["host._id"] = caller.ID
	}

	deleted, err := s.repo.Delete(ctx, criteria)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete stay")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "stay is not yours to remove")
	}

	s.logg.Info(s.logg.WithField(ctx, "stay_id", stayID.Hex()), "stay removed")
	return nil
}

// AddReview appends a review authored by the caller.
func (s *service) AddReview(ctx context.Context, caller identity.Caller, stayID, txt string) (Review, error) {
	if caller.IsZero() {
		return Review{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to review a stay")
	}
	id, err := parseID(stayID, "stay id")
	if err != nil {
		return Review{}, err
	}
	if txt == "" {
		return Review{}, pkgerrors.New(pkgerrors.CodeValidation, "review text is required")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Review{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "stay not found")
		}
		return Review{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stay")
	}

	review := Review{
		ID: uuid.NewString(),
		By: ReviewAuthor{
			ID:       caller.ID,
			Fullname: caller.Fullname,
			ImgURL:   caller.ImgURL,
		},
		Txt:       txt,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.repo.PushReview(ctx, id, review); err != nil {
		return Review{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "push review")
	}
	return review, nil
}

// RemoveReview pulls a review off a stay. Non-admin callers can only remove
// their own reviews, enforced through the update criteria.
func (s *service) RemoveReview(ctx context.Context, caller identity.Caller, stayID, reviewID string) error {
	if caller.IsZero() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to remove a review")
	}
	id, err := parseID(stayID, "stay id")
	if err != nil {
		return err
	}
	if reviewID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	criteria := bson.M{"_id": id}
	if !caller.IsAdmin {
		criteria["reviews.by._id"] = caller.ID
	}

	modified, err := s.repo.PullReview(ctx, criteria, reviewID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pull review")
	}
	if modified == 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "review is not yours to remove")
	}
	return nil
}

// canManageStay reports whether the caller may mutate the stay.
func canManageStay(caller identity.Caller, stay Stay) bool {
	return caller.IsAdmin || caller.Is(stay.Host.ID)
}

// parseID converts a hex id. A malformed id can never name a document, so it
// reads the same as a missing one.
func parseID(raw, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, label+" not found")
	}
	return id, nil
}

func setString(fields bson.M, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}

func setInt(fields bson.M, key string, value *int) {
	if value != nil {
		fields[key] = *value
	}
}

func attachCreatedAt(stay *Stay) {
	if stay.ID.IsZero() {
		return
	}
	createdAt := stay.ID.Timestamp()
	stay.CreatedAt = &createdAt
}

func toSummary(stay Stay) Summary {
	return Summary{
		ID:             stay.ID,
		Name:           stay.Name,
		Type:           stay.Type,
		ImgURLs:        ensureSlice(stay.ImgURLs),
		Price:          stay.Price,
		Summary:        stay.Summary,
		Capacity:       stay.Capacity,
		Bathrooms:      stay.Bathrooms,
		Bedrooms:       stay.Bedrooms,
		Beds:           stay.Beds,
		RoomType:       stay.RoomType,
		AvailableFrom:  stay.AvailableFrom,
		AvailableUntil: stay.AvailableUntil,
		Host:           stay.Host,
		Loc:            stay.Loc,
		Reviews:        ensureReviews(stay.Reviews),
		LikedByUsers:   ensureSlice(stay.LikedByUsers),
		SuggestedRange: suggestedRange(stay),
	}
}

// suggestedRange proposes a booking window inside the stay's availability.
func suggestedRange(stay Stay) *DateRange {
	if stay.AvailableFrom == "" || stay.AvailableUntil == "" {
		return nil
	}
	return &DateRange{Start: stay.AvailableFrom, End: stay.AvailableUntil}
}

func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ensureReviews(r []Review) []Review {
	if r == nil {
		return []Review{}
	}
	return r
}
