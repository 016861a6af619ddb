package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/staybnb/staybnb-backend/api/controllers"
	"github.com/staybnb/staybnb-backend/internal/identity"
	"github.com/staybnb/staybnb-backend/internal/orders"
	"github.com/staybnb/staybnb-backend/internal/stays"
	"github.com/staybnb/staybnb-backend/internal/wishlists"
	pkgAuth "github.com/staybnb/staybnb-backend/pkg/auth"
	"github.com/staybnb/staybnb-backend/pkg/config"
	"github.com/staybnb/staybnb-backend/pkg/logger"
	"github.com/staybnb/staybnb-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct {
	live bool
}

func (s stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.live, nil
}

type stubStayService struct {
	query func(ctx context.Context, filter stays.Filter) ([]stays.Summary, error)
}

func (s stubStayService) Query(ctx context.Context, filter stays.Filter) ([]stays.Summary, error) {
	if s.query != nil {
		return s.query(ctx, filter)
	}
	return []stays.Summary{}, nil
}

// GetByID implements [stays.Service].
func (s stubStayService) GetByID(ctx context.Context, id string) (stays.Stay, error) {
	panic("unimplemented")
}

// Add implements [stays.Service].
func (s stubStayService) Add(ctx context.Context, caller identity.Caller, draft stays.Draft) (stays.Stay, error) {
	panic("unimplemented")
}

// Update implements [stays.Service].
func (s stubStayService) Update(ctx context.Context, caller identity.Caller, input stays.UpdateInput) (stays.Stay, error) {
	panic("unimplemented")
}

// Remove implements [stays.Service].
func (s stubStayService) Remove(ctx context.Context, caller identity.Caller, id string) error {
	panic("unimplemented")
}

// AddReview implements [stays.Service].
func (s stubStayService) AddReview(ctx context.Context, caller identity.Caller, stayID, txt string) (stays.Review, error) {
	panic("unimplemented")
}

// RemoveReview implements [stays.Service].
func (s stubStayService) RemoveReview(ctx context.Context, caller identity.Caller, stayID, reviewID string) error {
	panic("unimplemented")
}

type stubOrderService struct {
	query func(ctx context.Context, caller identity.Caller, filter orders.Filter) ([]orders.Order, error)
}

func (s stubOrderService) Query(ctx context.Context, caller identity.Caller, filter orders.Filter) ([]orders.Order, error) {
	if s.query != nil {
		return s.query(ctx, caller, filter)
	}
	return []orders.Order{}, nil
}

// GetByID implements [orders.Service].
func (s stubOrderService) GetByID(ctx context.Context, caller identity.Caller, id string) (orders.Order, error) {
	panic("unimplemented")
}

// Add implements [orders.Service].
func (s stubOrderService) Add(ctx context.Context, caller identity.Caller, draft orders.Draft) (orders.Order, error) {
	panic("unimplemented")
}

// Update implements [orders.Service].
func (s stubOrderService) Update(ctx context.Context, caller identity.Caller, input orders.UpdateInput) (orders.Order, error) {
	panic("unimplemented")
}

// Remove implements [orders.Service].
func (s stubOrderService) Remove(ctx context.Context, caller identity.Caller, id string) error {
	panic("unimplemented")
}

type stubWishlistService struct{}

func (s stubWishlistService) Query(ctx context.Context, caller identity.Caller, filter wishlists.Filter) ([]wishlists.Wishlist, error) {
	return []wishlists.Wishlist{}, nil
}

// GetByID implements [wishlists.Service].
func (s stubWishlistService) GetByID(ctx context.Context, caller identity.Caller, id string) (wishlists.Wishlist, error) {
	panic("unimplemented")
}

// Add implements [wishlists.Service].
func (s stubWishlistService) Add(ctx context.Context, caller identity.Caller, draft wishlists.Draft) (wishlists.Wishlist, error) {
	panic("unimplemented")
}

// Update implements [wishlists.Service].
func (s stubWishlistService) Update(ctx context.Context, caller identity.Caller, input wishlists.UpdateInput) (wishlists.Wishlist, error) {
	panic("unimplemented")
}

// Remove implements [wishlists.Service].
func (s stubWishlistService) Remove(ctx context.Context, caller identity.Caller, id string) error {
	panic("unimplemented")
}

// AddStay implements [wishlists.Service].
func (s stubWishlistService) AddStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (wishlists.Wishlist, error) {
	panic("unimplemented")
}

// RemoveStay implements [wishlists.Service].
func (s stubWishlistService) RemoveStay(ctx context.Context, caller identity.Caller, wishlistID, stayID string) (wishlists.Wishlist, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	signed, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   "507f1f77bcf86cd799439011",
		Fullname: "Route Tester",
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return signed
}

func newTestRouter(cfg *config.Config, live bool) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		Sessions:        stubSessions{live: live},
		StayService:     stubStayService{},
		OrderService:    stubOrderService{},
		WishlistService: stubWishlistService{},
		HTTPMetrics:     metrics.NewHTTPMetrics(prometheus.NewRegistry()),
		Registry:        nil,
		Probes:          map[string]controllers.Pinger{"mongodb": stubPinger{}},
	})
}

func TestHealthEndpointsAreOpen(t *testing.T) {
	router := newTestRouter(testConfig(), true)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, true)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestRevokedSessionIsRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, false)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestStayListingIsOpenToAnonymous(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/api/stay/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous stay listing got %d", resp.Code)
	}
}

func TestStayWritesRequireJWT(t *testing.T) {
	router := newTestRouter(testConfig(), true)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/stay/"},
		{http.MethodPut, "/api/stay/507f1f77bcf86cd799439011"},
		{http.MethodDelete, "/api/stay/507f1f77bcf86cd799439011"},
		{http.MethodPost, "/api/stay/507f1f77bcf86cd799439011/review"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestOrderGroupRequiresJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, true)

	anon := httptest.NewRequest(http.MethodGet, "/api/order/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous order listing got %d", resp.Code)
	}

	signed := httptest.NewRequest(http.MethodGet, "/api/order/", nil)
	signed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, signed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for signed-in order listing got %d", resp.Code)
	}
}

func TestWishlistListingIsOpenToAnonymous(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/api/wishlist/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous wishlist listing got %d", resp.Code)
	}
}
