package userRepo

import (
	"context"
	"errors"

	"randevu/models"
)

// ErrNotFound means the referenced user does not exist.
var ErrNotFound = errors.New("user not found")

// UserRepository is the identity lookup collaborator: the engine only reads
// users, it never manages them.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
}
