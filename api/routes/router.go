package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tlemoine/gamehaul-backend/api/controllers"
	"github.com/tlemoine/gamehaul-backend/api/middleware"
	"github.com/tlemoine/gamehaul-backend/internal/auth"
	"github.com/tlemoine/gamehaul-backend/internal/notifications"
	"github.com/tlemoine/gamehaul-backend/internal/orders"
	"github.com/tlemoine/gamehaul-backend/internal/users"
	"github.com/tlemoine/gamehaul-backend/internal/wishes"
	"github.com/tlemoine/gamehaul-backend/pkg/auth/session"
	"github.com/tlemoine/gamehaul-backend/pkg/config"
	"github.com/tlemoine/gamehaul-backend/pkg/db"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
	"github.com/tlemoine/gamehaul-backend/pkg/metrics"
	"github.com/tlemoine/gamehaul-backend/pkg/redis"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager session.AccessSessionChecker
	Registry       *prometheus.Registry

	AuthService          auth.Service
	OrdersService        orders.Service
	WishesService        wishes.Service
	UsersService         users.Service
	NotificationsService notifications.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

		r.Route("/wishes", func(r chi.Router) {
			r.Get("/", controllers.ListMyWishes(deps.WishesService, logg))
			r.Post("/", controllers.CreateWish(deps.WishesService, logg))
			r.Patch("/{wishId}", controllers.UpdateMyWish(deps.WishesService, logg))
			r.Post("/{wishId}/cancel", controllers.CancelWish(deps.WishesService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.NotificationsService, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(deps.NotificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.NotificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.NotificationsService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
				r.Post("/", controllers.CreateOrder(deps.OrdersService, logg))
				r.Get("/{orderId}", controllers.GetOrder(deps.OrdersService, logg))
				r.Patch("/{orderId}", controllers.UpdateOrder(deps.OrdersService, logg))
				r.Delete("/{orderId}", controllers.DeleteOrder(deps.OrdersService, logg))
				r.Patch("/{orderId}/status", controllers.SetOrderStatus(deps.OrdersService, logg))
				r.Get("/{orderId}/wishes", controllers.ListOrderWishes(deps.WishesService, logg))
				r.Post("/{orderId}/items", controllers.AddOrderItem(deps.OrdersService, logg))
				r.Patch("/{orderId}/items/{itemId}", controllers.UpdateOrderItem(deps.OrdersService, logg))
				r.Delete("/{orderId}/items/{itemId}", controllers.RemoveOrderItem(deps.OrdersService, logg))
			})

			r.Post("/wishes/{wishId}/review", controllers.ReviewWish(deps.WishesService, logg))

			r.Route("/members", func(r chi.Router) {
				r.Get("/", controllers.ListMembers(deps.UsersService, logg))
				r.Get("/{userId}", controllers.GetMember(deps.UsersService, logg))
				r.Patch("/{userId}/role", controllers.UpdateMemberRole(deps.UsersService, logg))
			})
		})
	})

	return r
}
