// Package server assembles the HTTP handler: Connect services, interceptors,
// metrics endpoint, and the request logging and CORS middleware.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/access"
	"github.com/mmynk/expensetracker/internal/auth"
	"github.com/mmynk/expensetracker/internal/metrics"
	"github.com/mmynk/expensetracker/internal/middleware"
	"github.com/mmynk/expensetracker/internal/service"
	"github.com/mmynk/expensetracker/internal/storage"
	"github.com/mmynk/expensetracker/pkg/api/apiconnect"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Store      storage.Store
	Hasher     auth.Hasher
	Tokens     *auth.TokenManager
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	CORSOrigin string
}

// publicProcedures can be called without credentials.
var publicProcedures = []string{
	apiconnect.AuthServiceSignupProcedure,
	apiconnect.AuthServiceLoginProcedure,
}

// New builds the root handler.
func New(d Deps) http.Handler {
	resolver := auth.NewResolver(d.Store, d.Hasher)
	guard := access.NewGuard(d.Store, d.Store, d.Metrics, d.Logger)
	authenticator := middleware.NewAuthenticator(d.Tokens, resolver, d.Logger, publicProcedures...)

	// Outermost first: metrics see every outcome, logging sees the principal.
	interceptors := connect.WithInterceptors(
		d.Metrics.Interceptor(),
		authenticator.Interceptor(),
		middleware.LoggingInterceptor(d.Logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(resolver, d.Tokens, d.Store, d.Logger), interceptors))
	mux.Handle(apiconnect.NewUserServiceHandler(
		service.NewUserService(d.Store, d.Logger), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(
		service.NewExpenseService(guard, d.Logger), interceptors))
	mux.Handle("/metrics", d.Metrics.Handler())

	return loggingMiddleware(d.Logger, corsMiddleware(d.CORSOrigin, mux))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
