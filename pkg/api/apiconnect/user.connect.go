package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "expensetracker.v1.UserService"

const (
	UserServiceGetUserProcedure           = "/" + UserServiceName + "/GetUser"
	UserServiceGetUserByUsernameProcedure = "/" + UserServiceName + "/GetUserByUsername"
	UserServiceGetUserByEmailProcedure    = "/" + UserServiceName + "/GetUserByEmail"
)

// UserServiceHandler is implemented by the server side of UserService.
type UserServiceHandler interface {
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	GetUserByUsername(context.Context, *connect.Request[api.GetUserByUsernameRequest]) (*connect.Response[api.GetUserResponse], error)
	GetUserByEmail(context.Context, *connect.Request[api.GetUserByEmailRequest]) (*connect.Response[api.GetUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getUser := connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...)
	getUserByUsername := connect.NewUnaryHandler(UserServiceGetUserByUsernameProcedure, svc.GetUserByUsername, opts...)
	getUserByEmail := connect.NewUnaryHandler(UserServiceGetUserByEmailProcedure, svc.GetUserByEmail, opts...)

	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceGetUserProcedure:
			getUser.ServeHTTP(w, r)
		case UserServiceGetUserByUsernameProcedure:
			getUserByUsername.ServeHTTP(w, r)
		case UserServiceGetUserByEmailProcedure:
			getUserByEmail.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UserServiceClient is a client for UserService.
type UserServiceClient interface {
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	GetUserByUsername(context.Context, *connect.Request[api.GetUserByUsernameRequest]) (*connect.Response[api.GetUserResponse], error)
	GetUserByEmail(context.Context, *connect.Request[api.GetUserByEmailRequest]) (*connect.Response[api.GetUserResponse], error)
}

// NewUserServiceClient constructs a client for UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		getUser:           connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
		getUserByUsername: connect.NewClient[api.GetUserByUsernameRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserByUsernameProcedure, opts...),
		getUserByEmail:    connect.NewClient[api.GetUserByEmailRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserByEmailProcedure, opts...),
	}
}

type userServiceClient struct {
	getUser           *connect.Client[api.GetUserRequest, api.GetUserResponse]
	getUserByUsername *connect.Client[api.GetUserByUsernameRequest, api.GetUserResponse]
	getUserByEmail    *connect.Client[api.GetUserByEmailRequest, api.GetUserResponse]
}

func (c *userServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUserByUsername(ctx context.Context, req *connect.Request[api.GetUserByUsernameRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUserByUsername.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUserByEmail(ctx context.Context, req *connect.Request[api.GetUserByEmailRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUserByEmail.CallUnary(ctx, req)
}
