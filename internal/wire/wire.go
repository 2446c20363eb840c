// internal/wire/wire.go
package wire

import (
	"net/http"

	"billing-habit/internal/adaptor"
	"billing-habit/internal/data/repository"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/auth"
	"billing-habit/pkg/mailer"
	"billing-habit/pkg/middleware"
	"billing-habit/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services background jobs need
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	tokens *auth.TokenManager,
	blacklist auth.TokenBlacklist,
	sender mailer.OTPSender,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, tokens, blacklist, sender, config, logger)

	return &App{
		Router:  NewRouter(service, repo.DB(), config, logger),
		Service: service,
	}
}

// NewRouter mounts every route on a fresh chi router
func NewRouter(service *usecase.Service, db adaptor.Pinger, config *utils.Config, logger *zap.Logger) *chi.Mux {
	handler := adaptor.NewHandler(service, db, config, logger)
	authSession := middleware.AuthSession(service.Auth, logger)

	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, authSession)
	wireUser(r, handler.User, authSession)
	wireCatalog(r, handler, authSession)
	wireCustomer(r, handler.Customer, authSession)
	wireQuote(r, handler.Quote, authSession)

	r.Get("/health", handler.Health.Check)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
