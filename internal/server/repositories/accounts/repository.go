package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is the account store consulted by the authenticator.
type Repository interface {
	// FindByID returns common.ErrorNotFound when no account has the identifier.
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// SecretMatches compares a plaintext password with a stored hash.
	SecretMatches(plain, hash string) bool
	// Update writes the password fields of the account matching id and role.
	Update(ctx context.Context, id string, role models.Role, fields models.AccountUpdate) error
}

// SecretComparer is the one-way password check used by SecretMatches.
type SecretComparer interface {
	Matches(password, hash string) bool
}
