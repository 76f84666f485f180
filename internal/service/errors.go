package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/access"
	"github.com/mmynk/expensetracker/internal/auth"
	"github.com/mmynk/expensetracker/internal/middleware"
	"github.com/mmynk/expensetracker/internal/storage"
)

// toConnectError maps domain errors onto Connect codes. Each error stays
// scoped to its request; nothing here is retried.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrInvalidIdentifier), errors.Is(err, access.ErrInvalidExpense):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, access.ErrUnauthenticated),
		errors.Is(err, auth.ErrAuthenticationFailed),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, access.ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, storage.ErrDuplicateIdentity):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// requirePrincipal returns the principal attached by the auth interceptor.
func requirePrincipal(ctx context.Context) (auth.Principal, error) {
	p, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return auth.Principal{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return p, nil
}
