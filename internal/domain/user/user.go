package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the portfolio owner. The admin surface is single-user: exactly
// one account, seeded out of band.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
