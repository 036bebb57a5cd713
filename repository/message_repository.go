//go:generate go run go.uber.org/mock/mockgen -source=message_repository.go -destination=../mocks/mock_message_repository.go -package=mocks

package repository

import (
	"context"

	"github.com/akinalp/quickchat/models"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	// Create stores msg (ID must be set) and fills CreatedAt.
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// FindConversation returns every message exchanged between a and b in
	// insertion order.
	FindConversation(ctx context.Context, a, b string) ([]models.Message, error)

	// CountUnseenBySender maps sender id to the number of unseen messages that
	// sender has sent to receiver. Senders with nothing unseen are absent.
	CountUnseenBySender(ctx context.Context, receiverID string) (map[string]int, error)

	// MarkConversationSeen flags every sender -> receiver message as seen and
	// reports how many flipped.
	MarkConversationSeen(ctx context.Context, senderID, receiverID string) (int64, error)

	// MarkSeenByID flags one message as seen. Unknown ids are a no-op.
	MarkSeenByID(ctx context.Context, id string) error
}
