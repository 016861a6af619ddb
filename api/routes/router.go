package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/staybnb/staybnb-backend/api/controllers"
	"github.com/staybnb/staybnb-backend/api/middleware"
	"github.com/staybnb/staybnb-backend/internal/orders"
	"github.com/staybnb/staybnb-backend/internal/stays"
	"github.com/staybnb/staybnb-backend/internal/wishlists"
	"github.com/staybnb/staybnb-backend/pkg/auth/session"
	"github.com/staybnb/staybnb-backend/pkg/config"
	"github.com/staybnb/staybnb-backend/pkg/logger"
	"github.com/staybnb/staybnb-backend/pkg/metrics"
)

// RouterParams groups everything the route table needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.AccessSessionChecker

	StayService     stays.Service
	OrderService    orders.Service
	WishlistService wishlists.Service

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	// Readiness probes keyed by dependency name.
	Probes map[string]controllers.Pinger
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Probes))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	requireAuth := middleware.Auth(cfg.JWT, p.Sessions, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, p.Sessions, logg)

	r.Route("/api/stay", func(r chi.Router) {
		r.With(optionalAuth).Get("/", controllers.ListStays(p.StayService, logg))
		r.With(optionalAuth).Get("/{id}", controllers.GetStay(p.StayService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", controllers.CreateStay(p.StayService, logg))
			r.Put("/{id}", controllers.UpdateStay(p.StayService, logg))
			r.Delete("/{id}", controllers.DeleteStay(p.StayService, logg))
			r.Post("/{id}/review", controllers.AddStayReview(p.StayService, logg))
			r.Delete("/{id}/review/{reviewId}", controllers.DeleteStayReview(p.StayService, logg))
		})
	})

	r.Route("/api/order", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.ListOrders(p.OrderService, logg))
		r.Get("/{id}", controllers.GetOrder(p.OrderService, logg))
		r.Post("/", controllers.CreateOrder(p.OrderService, logg))
		r.Put("/{id}", controllers.UpdateOrder(p.OrderService, logg))
		r.Delete("/{id}", controllers.DeleteOrder(p.OrderService, logg))
	})

	r.Route("/api/wishlist", func(r chi.Router) {
		r.With(optionalAuth).Get("/", controllers.ListWishlists(p.WishlistService, logg))
		r.With(optionalAuth).Get("/{id}", controllers.GetWishlist(p.WishlistService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", controllers.CreateWishlist(p.WishlistService, logg))
			r.Put("/{id}", controllers.UpdateWishlist(p.WishlistService, logg))
			r.Delete("/{id}", controllers.DeleteWishlist(p.WishlistService, logg))
			r.Post("/{id}/stay", controllers.AddWishlistStay(p.WishlistService, logg))
			r.Delete("/{id}/stay/{stayId}", controllers.DeleteWishlistStay(p.WishlistService, logg))
		})
	})

	r.With(requireAuth).Get("/api/ping", controllers.PrivatePing())

	return r
}
