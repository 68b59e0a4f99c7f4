package ports

import (
	"context"
	"time"
)

// UserData represents user data for persistence
type UserData struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines the contract for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *UserData) error
	FindByID(ctx context.Context, id uint) (*UserData, error)
	FindByEmail(ctx context.Context, email string) (*UserData, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is the identity carried by an access token
type TokenClaims struct {
	UserID    uint
	Username  string
	Email     string
	ExpiresAt time.Time
}

// TokenManager issues and validates access tokens
type TokenManager interface {
	Generate(ctx context.Context, claims TokenClaims) (string, error)
	Validate(ctx context.Context, token string) (*TokenClaims, error)
}
