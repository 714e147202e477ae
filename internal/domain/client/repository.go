package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, client Client) (Client, error)
	// GetByUserID resolves an application user id to the client profile;
	// returns ErrClientNotFound when the user has no profile.
	GetByUserID(ctx context.Context, userID string) (Client, error)
}
