package client

import (
	"context"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// Client is the contract the screens use to talk to the inventory service.
type Client interface {
	Login(ctx context.Context, name, password string) (LoginResult, error)
	Register(ctx context.Context, name, password string) (RegisterResult, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error)
	UpdateItem(ctx context.Context, id string, in models.ItemInput) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// LoginResult is a normalised successful login.
type LoginResult struct {
	Token string
	Name  string
	Role  models.Role
}

// RegisterResult is a normalised successful registration.
type RegisterResult struct {
	Token   string
	Message string
}

type tokenKey struct{}

// WithToken returns a context whose inventory calls carry token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}
