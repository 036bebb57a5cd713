//go:generate go run go.uber.org/mock/mockgen -source=user_repository.go -destination=../mocks/mock_user_repository.go -package=mocks

// Package repository is the persistence layer. Services depend on the
// interfaces declared here; the sqlite_*.go files implement them.
package repository

import (
	"context"

	"github.com/akinalp/quickchat/models"
)

// UserRepository is the identity store the chat core reads from.
type UserRepository interface {
	// Create assigns user.ID and user.CreatedAt.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListExcept returns every user but id, ordered by full name.
	ListExcept(ctx context.Context, id string) ([]models.User, error)
	UpdateLanguage(ctx context.Context, id, language string) error
}
