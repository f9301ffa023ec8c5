package domain

import (
	"context"
	"time"
)

// User is the account a requester acts as. Accounts and identity verification are managed
// elsewhere; this service only reads whether the user is verified.
// swagger:model User
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// TokenIssuer issues tokens (e.g. JWT) for a user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository reads user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
