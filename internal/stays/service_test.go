package stays

import (
	"context"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staybnb/staybnb-backend/internal/identity"
	pkgerrors "github.com/staybnb/staybnb-backend/pkg/errors"
	"github.com/staybnb/staybnb-backend/pkg/logger"
)

type stubStayRepo struct {
	stays map[primitive.ObjectID]Stay

	lastCriteria bson.M
	lastSort     bson.D
	lastSet      bson.M
	lastReview   Review
	pullCriteria bson.M
	pullModified int64
	deleteErr    error
}

func (s *stubStayRepo) Query(ctx context.Context, criteria bson.M, sort bson.D, pageIdx *int) ([]Stay, error) {
	s.lastCriteria = criteria
	s.lastSort = sort
	out := []Stay{}
	for _, stay := range s.stays {
		out = append(out, stay)
	}
	return out, nil
}

func (s *stubStayRepo) GetByID(ctx context.Context, id primitive.ObjectID) (Stay, error) {
	stay, ok := s.stays[id]
	if !ok {
		return Stay{}, mongo.ErrNoDocuments
	}
	return stay, nil
}

func (s *stubStayRepo) Insert(ctx context.Context, stay Stay) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stay.ID = id
	if s.stays == nil {
		s.stays = map[primitive.ObjectID]Stay{}
	}
	s.stays[id] = stay
	return id, nil
}

func (s *stubStayRepo) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	s.lastSet = fields
	stay, ok := s.stays[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if name, ok := fields["name"].(string); ok {
		stay.Name = name
	}
	if price, ok := fields["price"].(float64); ok {
		stay.Price = price
	}
	if host, ok := fields["host"].(Host); ok {
		stay.Host = host
	}
	s.stays[id] = stay
	return nil
}

func (s *stubStayRepo) Delete(ctx context.Context, criteria bson.M) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	id, _ := criteria["_id"].(primitive.ObjectID)
	stay, ok := s.stays[id]
	if !ok {
		return 0, nil
	}
	if hostID, restricted := criteria["host._id"].(primitive.ObjectID); restricted && stay.Host.ID != hostID {
		return 0, nil
	}
	delete(s.stays, id)
	return 1, nil
}

func (s *stubStayRepo) PushReview(ctx context.Context, stayID primitive.ObjectID, review Review) error {
	s.lastReview = review
	stay := s.stays[stayID]
	stay.Reviews = append(stay.Reviews, review)
	s.stays[stayID] = stay
	return nil
}

func (s *stubStayRepo) PullReview(ctx context.Context, criteria bson.M, reviewID string) (int64, error) {
	s.pullCriteria = criteria
	return s.pullModified, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newStayService(t *testing.T, repo *stubStayRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Logg: testLogger()})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func host(id primitive.ObjectID) Host {
	return Host{ID: id, Fullname: "Ana Silva"}
}

func caller(id primitive.ObjectID, admin bool) identity.Caller {
	return identity.Caller{ID: id, Fullname: "Ana Silva", IsAdmin: admin}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestQueryBuildsCriteria(t *testing.T) {
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{}}
	svc := newStayService(t, repo)

	_, err := svc.Query(context.Background(), Filter{Txt: "lisbon", Guests: 2})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if _, ok := repo.lastCriteria["$or"]; !ok {
		t.Fatalf("expected text criteria got %v", repo.lastCriteria)
	}
	if !equalM(repo.lastCriteria["capacity"], bson.M{"$gte": 2}) {
		t.Fatalf("expected capacity criteria got %v", repo.lastCriteria)
	}
}

func TestAddRequiresPriceAndCaller(t *testing.T) {
	repo := &stubStayRepo{}
	svc := newStayService(t, repo)
	hostID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), identity.Caller{}, Draft{Price: floatPtr(10)})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized got %v", err)
	}

	_, err = svc.Add(context.Background(), caller(hostID, false), Draft{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestAddDefaultsAndHostSnapshot(t *testing.T) {
	repo := &stubStayRepo{}
	svc := newStayService(t, repo)
	hostID := primitive.NewObjectID()

	stay, err := svc.Add(context.Background(), caller(hostID, false), Draft{Price: floatPtr(120), Guests: 3})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if stay.Name != defaultName || stay.Type != defaultType {
		t.Fatalf("expected defaults got name=%q type=%q", stay.Name, stay.Type)
	}
	if stay.Capacity != 3 {
		t.Fatalf("expected capacity from guests got %d", stay.Capacity)
	}
	if stay.Host.ID != hostID || stay.Host.Fullname != "Ana Silva" {
		t.Fatalf("expected host snapshot from caller got %+v", stay.Host)
	}
	if stay.CreatedAt == nil {
		t.Fatal("expected derived createdAt")
	}
	if stay.Reviews == nil || stay.ImgURLs == nil {
		t.Fatal("expected empty slices, not nil")
	}
	if stay.Bedrooms != 1 || stay.Beds != 1 || stay.Bathrooms != 1 {
		t.Fatalf("expected room counts to default to 1 got %d/%d/%d", stay.Bedrooms, stay.Beds, stay.Bathrooms)
	}
}

func TestAddPersistsRoomDetails(t *testing.T) {
	repo := &stubStayRepo{}
	svc := newStayService(t, repo)

	stay, err := svc.Add(context.Background(), caller(primitive.NewObjectID(), false), Draft{
		Price:     floatPtr(100),
		Bedrooms:  3,
		Beds:      2,
		Bathrooms: 2,
		RoomType:  "Entire home",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if stay.Bedrooms != 3 || stay.Beds != 2 || stay.Bathrooms != 2 {
		t.Fatalf("room counts dropped on create: %d/%d/%d", stay.Bedrooms, stay.Beds, stay.Bathrooms)
	}
	if stay.RoomType != "Entire home" {
		t.Fatalf("unexpected roomType %q", stay.RoomType)
	}
	stored := repo.stays[stay.ID]
	if stored.Bedrooms != 3 || stored.RoomType != "Entire home" {
		t.Fatalf("stored stay lost room details: %+v", stored)
	}
}

func TestUpdateForbiddenForNonHost(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Name: "Loft", Price: 80, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	_, err := svc.Update(context.Background(), caller(primitive.NewObjectID(), false), UpdateInput{
		ID:    stayID.Hex(),
		Name:  strPtr("Hijacked"),
		Price: floatPtr(1),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
	if repo.lastSet != nil {
		t.Fatal("expected no write for forbidden update")
	}
}

func TestUpdateKeepsStoredHost(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Name: "Loft", Price: 80, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	updated, err := svc.Update(context.Background(), caller(hostID, false), UpdateInput{
		ID:    stayID.Hex(),
		Name:  strPtr("Riverside Loft"),
		Price: floatPtr(95),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.Name != "Riverside Loft" || updated.Price != 95 {
		t.Fatalf("unexpected updated stay %+v", updated)
	}
	if _, ok := repo.lastSet["host"]; ok {
		t.Fatalf("host must never reach the $set, got %v", repo.lastSet["host"])
	}
	if updated.Host.ID != hostID {
		t.Fatalf("expected stored host preserved got %+v", updated.Host)
	}
}

func TestUpdatePartialBodyKeepsOmittedFields(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Name: "Loft", Summary: "Cosy", Price: 80, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	updated, err := svc.Update(context.Background(), caller(hostID, false), UpdateInput{
		ID:    stayID.Hex(),
		Price: floatPtr(120),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	for _, key := range []string{"name", "summary", "imgUrls", "loc", "reviews"} {
		if _, ok := repo.lastSet[key]; ok {
			t.Fatalf("omitted field %q must not be written, $set was %v", key, repo.lastSet)
		}
	}
	if repo.lastSet["price"] != 120.0 {
		t.Fatalf("expected price in $set got %v", repo.lastSet)
	}
	if updated.Name != "Loft" || updated.Summary != "Cosy" {
		t.Fatalf("price-only update wiped other fields: %+v", updated)
	}
}

func TestUpdateAllowedForAdmin(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Name: "Loft", Price: 80, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	_, err := svc.Update(context.Background(), caller(primitive.NewObjectID(), true), UpdateInput{
		ID:    stayID.Hex(),
		Name:  strPtr("Moderated"),
		Price: floatPtr(80),
	})
	if err != nil {
		t.Fatalf("expected admin update to succeed got %v", err)
	}
}

func TestRemoveScopedToHost(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	err := svc.Remove(context.Background(), caller(primitive.NewObjectID(), false), stayID.Hex())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
	if _, ok := repo.stays[stayID]; !ok {
		t.Fatal("stay should survive non-owner delete")
	}

	if err := svc.Remove(context.Background(), caller(hostID, false), stayID.Hex()); err != nil {
		t.Fatalf("expected owner delete to succeed got %v", err)
	}
	if _, ok := repo.stays[stayID]; ok {
		t.Fatal("stay should be gone")
	}
}

func TestRemoveAdminBypassesOwnership(t *testing.T) {
	hostID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Host: host(hostID)},
	}}
	svc := newStayService(t, repo)

	if err := svc.Remove(context.Background(), caller(primitive.NewObjectID(), true), stayID.Hex()); err != nil {
		t.Fatalf("expected admin delete to succeed got %v", err)
	}
}

func TestAddReviewSnapshotsAuthor(t *testing.T) {
	stayID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{
		stayID: {ID: stayID, Host: host(primitive.NewObjectID())},
	}}
	svc := newStayService(t, repo)

	review, err := svc.AddReview(context.Background(), caller(authorID, false), stayID.Hex(), "Great spot")
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if review.ID == "" {
		t.Fatal("expected generated review id")
	}
	if review.By.ID != authorID || review.By.Fullname != "Ana Silva" {
		t.Fatalf("unexpected author snapshot %+v", review.By)
	}
	if review.CreatedAt == 0 {
		t.Fatal("expected millisecond timestamp")
	}
	if repo.lastReview.Txt != "Great spot" {
		t.Fatalf("unexpected pushed review %+v", repo.lastReview)
	}
}

func TestAddReviewRejectsEmptyText(t *testing.T) {
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{stays: map[primitive.ObjectID]Stay{stayID: {ID: stayID}}}
	svc := newStayService(t, repo)

	_, err := svc.AddReview(context.Background(), caller(primitive.NewObjectID(), false), stayID.Hex(), "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestRemoveReviewScopesCriteria(t *testing.T) {
	stayID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	repo := &stubStayRepo{pullModified: 1}
	svc := newStayService(t, repo)

	err := svc.RemoveReview(context.Background(), caller(authorID, false), stayID.Hex(), "rev-1")
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if got := repo.pullCriteria["reviews.by._id"]; got != authorID {
		t.Fatalf("expected author-scoped criteria got %v", repo.pullCriteria)
	}

	repo.pullCriteria = nil
	if err := svc.RemoveReview(context.Background(), caller(authorID, true), stayID.Hex(), "rev-1"); err != nil {
		t.Fatalf("expected admin success got %v", err)
	}
	if _, ok := repo.pullCriteria["reviews.by._id"]; ok {
		t.Fatal("admin criteria should not be author-scoped")
	}
}

func TestRemoveReviewNothingModified(t *testing.T) {
	stayID := primitive.NewObjectID()
	repo := &stubStayRepo{pullModified: 0}
	svc := newStayService(t, repo)

	err := svc.RemoveReview(context.Background(), caller(primitive.NewObjectID(), false), stayID.Hex(), "rev-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &stubStayRepo{}
	svc := newStayService(t, repo)

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}

	_, err = svc.GetByID(context.Background(), "not-an-id")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for malformed id got %v", err)
	}
}

func TestMalformedIDReadsNotFoundEverywhere(t *testing.T) {
	svc := newStayService(t, &stubStayRepo{})
	c := caller(primitive.NewObjectID(), false)

	if _, err := svc.Update(context.Background(), c, UpdateInput{ID: "nope"}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("update: expected not found got %v", err)
	}
	if err := svc.Remove(context.Background(), c, "nope"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("remove: expected not found got %v", err)
	}
	if _, err := svc.AddReview(context.Background(), c, "nope", "nice"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("add review: expected not found got %v", err)
	}
	if err := svc.RemoveReview(context.Background(), c, "nope", "rev-1"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("remove review: expected not found got %v", err)
	}
}
