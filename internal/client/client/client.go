package client

import (
	"context"
	"time"
)

// Session describes the outcome of a successful login.
type Session struct {
	NeedsPasswordChange bool
}

// Identity is what the server reports about the current access token.
type Identity struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Client interface {
	Close() error
	Login(ctx context.Context, id, password string) (*Session, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Me(ctx context.Context) (*Identity, error)
	Ping(ctx context.Context) error
	Logout()
}
