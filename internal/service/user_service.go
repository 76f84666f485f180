package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/models"
	"github.com/mmynk/expensetracker/internal/storage"
	"github.com/mmynk/expensetracker/pkg/api"
	"github.com/mmynk/expensetracker/pkg/api/apiconnect"
)

var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// UserService looks up public user profiles.
type UserService struct {
	users  storage.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService with the given user store.
func NewUserService(users storage.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	id, err := s.users.ParseID(req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.users.GetUserByID(ctx, id)
	return s.respond("GetUser", user, err)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, req *connect.Request[api.GetUserByUsernameRequest]) (*connect.Response[api.GetUserResponse], error) {
	user, err := s.users.GetUserByUsername(ctx, req.Msg.Username)
	return s.respond("GetUserByUsername", user, err)
}

// GetUserByEmail retrieves a user by email address.
func (s *UserService) GetUserByEmail(ctx context.Context, req *connect.Request[api.GetUserByEmailRequest]) (*connect.Response[api.GetUserResponse], error) {
	user, err := s.users.GetUserByEmail(ctx, req.Msg.Email)
	return s.respond("GetUserByEmail", user, err)
}

func (s *UserService) respond(op string, user *models.User, err error) (*connect.Response[api.GetUserResponse], error) {
	if err != nil {
		s.logger.Debug(op+" failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetUserResponse{User: api.NewUser(user)}), nil
}
