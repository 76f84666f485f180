package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// principalKey is the context key for the authenticated principal.
const principalKey contextKey = "principal"

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the principal from the context.
// The second result is false if the request was not authenticated.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// Authenticator resolves the principal for each request from its Authorization header.
// Two schemes are accepted:
//
//	Authorization: Bearer <token>           token issued by Login
//	Authorization: Basic <base64(id:pass)>  id is a username or an email
type Authenticator struct {
	tokens   *auth.TokenManager
	resolver auth.Authenticator
	public   map[string]bool
	logger   *slog.Logger
}

// NewAuthenticator creates an Authenticator. Procedures listed in public are
// served without credentials; a valid credential on them is still attached.
func NewAuthenticator(tokens *auth.TokenManager, resolver auth.Authenticator, logger *slog.Logger, public ...string) *Authenticator {
	set := make(map[string]bool, len(public))
	for _, procedure := range public {
		set[procedure] = true
	}
	return &Authenticator{
		tokens:   tokens,
		resolver: resolver,
		public:   set,
		logger:   logger,
	}
}

// Interceptor returns a Connect interceptor that requires authentication on
// every non-public procedure and adds the principal to the request context.
func (a *Authenticator) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			header := req.Header().Get("Authorization")

			if a.public[procedure] {
				if header != "" {
					if p, err := a.Resolve(ctx, header); err == nil {
						ctx = WithPrincipal(ctx, p)
					}
				}
				return next(ctx, req)
			}

			if header == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			p, err := a.Resolve(ctx, header)
			if err != nil {
				a.logger.Warn("Authentication failed", "procedure", procedure, "error", err)
				if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrAuthenticationFailed) {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				return nil, connect.NewError(connect.CodeInternal, err)
			}

			return next(WithPrincipal(ctx, p), req)
		}
	}
}

// Resolve turns an Authorization header value into a principal.
func (a *Authenticator) Resolve(ctx context.Context, header string) (auth.Principal, error) {
	scheme, credentials, ok := strings.Cut(header, " ")
	if !ok {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	switch {
	case strings.EqualFold(scheme, "Bearer"):
		return a.tokens.Validate(strings.TrimSpace(credentials))
	case strings.EqualFold(scheme, "Basic"):
		identifier, password, ok := (&http.Request{Header: http.Header{"Authorization": {header}}}).BasicAuth()
		if !ok {
			return auth.Principal{}, auth.ErrInvalidToken
		}
		return a.resolver.Authenticate(ctx, identifier, password)
	default:
		return auth.Principal{}, auth.ErrInvalidToken
	}
}
