package wishlists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/internal/identity"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo Store
	Logg *logger.Logger

	// Now lets tests pin the clock; defaults to time.Now.
	Now func() time.Time
}

// Service exposes business rules for wishlist management.
type Service interface {
	Query(ctx context.Context, caller identity.Caller, filter Filter) ([]Wishlist, error)
	GetByID(ctx context.Context, caller identity.Caller, id string) (Wishlist, error)
	Add(ctx context.Context, caller identity.Caller, draft Draft) (Wishlist, error)
	Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Wishlist, error)
	Remove(ctx context.Context, caller identity.Caller, id string) error
	AddStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (Wishlist, error)
	RemoveStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (Wishlist, error)
}

type service struct {
	repo Store
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
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

// Query lists wishlists. Signed-in non-admin callers are scoped to their own.
func (s *service) Query(ctx context.Context, caller identity.Caller, filter Filter) ([]Wishlist, error) {
	wishlists, err := s.repo.Query(ctx, buildCriteria(caller, filter))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query wishlists")
	}
	for i := range wishlists {
		normalize(&wishlists[i])
	}
	return wishlists, nil
}

// GetByID loads a single wishlist. Reads are unrestricted; a signed-in caller
// could shed the token and read anyway, so gating here would only be theater.
func (s *service) GetByID(ctx context.Context, caller identity.Caller, id string) (Wishlist, error) {
	wishlist, err := s.load(ctx, id)
	if err != nil {
		return Wishlist{}, err
	}
	normalize(&wishlist)
	return wishlist, nil
}

// Add creates a wishlist owned by the caller.
func (s *service) Add(ctx context.Context, caller identity.Caller, draft Draft) (Wishlist, error) {
	if caller.IsZero() {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to create a wishlist")
	}

	now := s.now()
	wishlist := Wishlist{
		Title: draft.Title,
		ByUser: Owner{
			ID:       caller.ID,
			Fullname: caller.Fullname,
		},
		Stays:     ensureStays(draft.Stays),
		City:      draft.City,
		Country:   draft.Country,
		CreatedAt: now.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
	}
	if wishlist.Title == "" {
		wishlist.Title = fmt.Sprintf("Wishlist %d", now.Year())
	}

	id, err := s.repo.Insert(ctx, wishlist)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist")
	}
	wishlist.ID = id

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"wishlist_id": id.Hex(),
		"user_id":     caller.ID.Hex(),
	}), "wishlist created")

	return wishlist, nil
}

// Update merges the supplied fields and refreshes the update stamp; omitted
// fields are left alone. Only the owner or an admin may update.
func (s *service) Update(ctx context.Context, caller identity.Caller, input UpdateInput) (Wishlist, error) {
	if caller.IsZero() {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update a wishlist")
	}
	existing, err := s.load(ctx, input.ID)
	if err != nil {
		return Wishlist{}, err
	}
	if !canManage(caller, existing) {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist is not yours to update")
	}

	// Only keys present in the body are written; omitted fields keep their
	// stored value.
	fields := bson.M{"updatedAt": s.now().UnixMilli()}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Stays != nil {
		fields["stays"] = input.Stays
	}
	if input.City != nil {
		fields["city"] = *input.City
	}
	if input.Country != nil {
		fields["country"] = *input.Country
	}
	if input.ByUser != nil {
		fields["byUser"] = *input.ByUser
	}
	if err := s.repo.Set(ctx, existing.ID, fields); err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wishlist")
	}

	updated, err := s.repo.GetByID(ctx, existing.ID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wishlist")
	}
	normalize(&updated)
	return updated, nil
}

// Remove deletes a wishlist. Ownership rides in the delete criteria unless
// the caller is an admin.
func (s *service) Remove(ctx context.Context, caller identity.Caller, id string) error {
	if caller.IsZero() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to remove a wishlist")
	}
	wishlistID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
	}

	criteria := bson.M{"_id": wishlistID}
	if !caller.IsAdmin {
		criteria["byUser._id"] = caller.ID
	}

	deleted, err := s.repo.Delete(ctx, criteria)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "wishlist is not yours to remove")
	}

	s.logg.Info(s.logg.WithField(ctx, "wishlist_id", wishlistID.Hex()), "wishlist removed")
	return nil
}

// AddStay puts a stay on the list, rejecting duplicates. The check-then-push
// race is accepted; a concurrent duplicate costs nothing worse than a
// repeated entry on one list.
func (s *service) AddStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (Wishlist, error) {
	if caller.IsZero() {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to edit a wishlist")
	}
	if stayID == "" {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeValidation, "stay id is required")
	}
	existing, err := s.load(ctx, wishlistID)
	if err != nil {
		return Wishlist{}, err
	}
	if !canManage(caller, existing) {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist is not yours to edit")
	}
	for _, id := range existing.Stays {
		if id == stayID {
			return Wishlist{}, pkgerrors.New(pkgerrors.CodeConflict, "stay is already on this wishlist")
		}
	}

	if err := s.repo.PushStay(ctx, existing.ID, stayID, s.now().UnixMilli()); err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "push wishlist stay")
	}

	updated, err := s.repo.GetByID(ctx, existing.ID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wishlist")
	}
	normalize(&updated)
	return updated, nil
}

// RemoveStay takes a stay off the list. Pulling a stay that is not on the
// list reads as not found.
func (s *service) RemoveStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (Wishlist, error) {
	if caller.IsZero() {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to edit a wishlist")
	}
	existing, err := s.load(ctx, wishlistID)
	if err != nil {
		return Wishlist{}, err
	}
	if !canManage(caller, existing) {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeForbidden, "wishlist is not yours to edit")
	}

	modified, err := s.repo.PullStay(ctx, existing.ID, stayID, s.now().UnixMilli())
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pull wishlist stay")
	}
	if modified == 0 {
		return Wishlist{}, pkgerrors.New(pkgerrors.CodeNotFound, "stay is not on this wishlist")
	}

	updated, err := s.repo.GetByID(ctx, existing.ID)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wishlist")
	}
	normalize(&updated)
	return updated, nil
}

func (s *service) load(ctx context.Context, id string) (Wishlist, error) {
	wishlistID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
	}
	wishlist, err := s.repo.GetByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
		}
		return Wishlist{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return wishlist, nil
}

// canManage reports whether the caller may mutate the wishlist.
func canManage(caller identity.Caller, wishlist Wishlist) bool {
	return caller.IsAdmin || caller.Is(wishlist.ByUser.ID)
}

func normalize(wishlist *Wishlist) {
	wishlist.Stays = ensureStays(wishlist.Stays)
	if wishlist.CreatedAt == 0 && !wishlist.ID.IsZero() {
		wishlist.CreatedAt = wishlist.ID.Timestamp().UnixMilli()
	}
}

func ensureStays(stays []string) []string {
	if stays == nil {
		return []string{}
	}
	return stays
}
