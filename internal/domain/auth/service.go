package auth

import (
	"context"
)

type AuthService interface {
	// Login checks admin credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the presented access token
	Logout(ctx context.Context, token string) error
}
