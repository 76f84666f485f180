package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/access"
	"github.com/mmynk/expensetracker/internal/auth"
	"github.com/mmynk/expensetracker/internal/storage"
	"github.com/mmynk/expensetracker/pkg/api"
	"github.com/mmynk/expensetracker/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.TokenManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.TokenManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		users:         users,
		logger:        logger,
	}
}

// Signup creates a new user account.
func (s *AuthService) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.SignupResponse], error) {
	s.logger.Info("Signup request", "username", req.Msg.Username, "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.Email, req.Msg.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateIdentity) {
			s.logger.Warn("Signup rejected", "username", req.Msg.Username, "error", err)
		} else {
			s.logger.Error("Signup failed", "username", req.Msg.Username, "error", err)
		}
		return nil, toConnectError(err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.SignupResponse{User: api.NewUser(user)}), nil
}

// Login authenticates a user by username or email and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "identifier", req.Msg.Identifier)

	principal, err := s.authenticator.Authenticate(ctx, req.Msg.Identifier, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "identifier", req.Msg.Identifier, "error", err)
		return nil, toConnectError(err)
	}

	user, err := s.users.GetUserByID(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("Failed to load user after login", "user_id", principal.UserID, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.tokens.Generate(principal)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", principal.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.LoginResponse{
		User:  api.NewUser(user),
		Token: token,
	}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, principal.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, toConnectError(access.ErrUnauthenticated)
	}
	if err != nil {
		s.logger.Error("GetCurrentUser failed", "user_id", principal.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: api.NewUser(user)}), nil
}
