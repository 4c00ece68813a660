// Package httpserver exposes the clubhouse REST API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/acoudray/clubhouse/internal/metrics"
	"github.com/acoudray/clubhouse/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth            service.AuthService
	authz           service.AuthzService
	users           service.UserService
	challenges      service.ChallengeService
	accomplishments service.AccomplishmentService
	goodies         service.GoodiesService
	purchases       service.PurchaseService

	rec      metrics.Recorder
	gatherer prometheus.Gatherer
	log      *zap.Logger
}

// Deps carries the server's injected dependencies.
type Deps struct {
	Auth            service.AuthService
	Authz           service.AuthzService
	Users           service.UserService
	Challenges      service.ChallengeService
	Accomplishments service.AccomplishmentService
	Goodies         service.GoodiesService
	Purchases       service.PurchaseService

	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

// New constructs an HTTP server with injected services.
func New(d Deps) *Server {
	return &Server{
		auth:            d.Auth,
		authz:           d.Authz,
		users:           d.Users,
		challenges:      d.Challenges,
		accomplishments: d.Accomplishments,
		goodies:         d.Goodies,
		purchases:       d.Purchases,
		rec:             d.Recorder,
		gatherer:        d.Gatherer,
		log:             d.Log,
	}
}

// Routes builds the chi router with middleware and all API endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(RequestLogger(s.log))
	r.Use(Metrics(s.rec))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.Auth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.Get("/{id}", s.handleGetUser)
				r.Put("/{id}", s.handleUpdateUser)
				r.Delete("/{id}", s.handleDeleteUser)
				r.Get("/{id}/accomplishments", s.handleListUserAccomplishments)
				r.Get("/{id}/purchases", s.handleListUserPurchases)
			})

			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", s.handleListChallenges)
				r.Post("/", s.handleCreateChallenge)
				r.Get("/{id}", s.handleGetChallenge)
				r.Put("/{id}", s.handleUpdateChallenge)
				r.Delete("/{id}", s.handleDeleteChallenge)
			})

			r.Route("/accomplishments", func(r chi.Router) {
				r.Get("/", s.handleListAccomplishments)
				r.Post("/", s.handleCreateAccomplishment)
				r.Get("/{id}", s.handleGetAccomplishment)
				r.Put("/{id}", s.handleUpdateAccomplishment)
				r.Delete("/{id}", s.handleDeleteAccomplishment)
			})

			r.Route("/goodies", func(r chi.Router) {
				r.Get("/", s.handleListGoodies)
				r.Post("/", s.handleCreateGoodies)
				r.Get("/{id}", s.handleGetGoodies)
				r.Put("/{id}", s.handleUpdateGoodies)
				r.Delete("/{id}", s.handleDeleteGoodies)
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", s.handleListPurchases)
				r.Post("/", s.handleCreatePurchase)
				r.Get("/{id}", s.handleGetPurchase)
				r.Patch("/{id}/delivered", s.handleSetDelivered)
				r.Delete("/{id}", s.handleRefundPurchase)
			})
		})
	})

	return r
}
