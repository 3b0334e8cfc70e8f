// Package users covers account registration and login.
package users

import (
	"context"

	"melodex/internal/models"
)

// Store describes the persistence operations required by the user
// service.
type Store interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Service exposes user-account workflows.
type Service interface {
	Signup(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New wires a Service backed by the provided store and token issuer.
func New(st Store, tokens TokenIssuer) Service {
	return &service{store: st, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	user, err := s.store.CreateUser(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
