package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	// Refresh re-issues an access token for a user id taken from a verified
	// refresh token.
	Refresh(ctx context.Context, userID string) (AuthResponse, error)
}
