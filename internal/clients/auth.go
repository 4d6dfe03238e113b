package clients

import (
	"context"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
)

type AuthResponse struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (ac *AuthClient) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out AuthResponse
	err := ac.c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", in, &out)
	return out, err
}

func (ac *AuthClient) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	in := map[string]string{"username": name, "email": email, "password": password}
	var out AuthResponse
	err := ac.c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", in, &out)
	return out, err
}

// Profile returns the user the current bearer token belongs to.
func (ac *AuthClient) Profile(ctx context.Context) (auth.User, error) {
	var out auth.User
	err := ac.c.doJSON(ctx, http.MethodGet, "/api/auth/profile", "", nil, &out)
	return out, err
}

func (ac *AuthClient) UpdateProfile(ctx context.Context, name, email string) (auth.User, error) {
	in := map[string]string{"name": name, "email": email}
	var out auth.User
	err := ac.c.doJSON(ctx, http.MethodPut, "/api/auth/profile", "", in, &out)
	return out, err
}
