package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/quickchat/database"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

type sqliteMessageRepo struct {
	db database.TxQuerier
}

func NewSQLiteMessageRepo(db database.TxQuerier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

const messageColumns = "id, sender_id, receiver_id, text, image, seen, created_at"

func (r *sqliteMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, text, image, seen)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Text, msg.Image, msg.Seen,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ?", id)

	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: message not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

func (r *sqliteMessageRepo) FindConversation(ctx context.Context, a, b string) ([]models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?)
		   OR (sender_id = ? AND receiver_id = ?)
		ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (r *sqliteMessageRepo) CountUnseenBySender(ctx context.Context, receiverID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sender_id, COUNT(*)
		FROM messages
		WHERE receiver_id = ? AND seen = 0
		GROUP BY sender_id`, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unseen messages: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var senderID string
		var n int
		if err := rows.Scan(&senderID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan unseen count: %w", err)
		}
		counts[senderID] = n
	}
	return counts, rows.Err()
}

func (r *sqliteMessageRepo) MarkConversationSeen(ctx context.Context, senderID, receiverID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE messages SET seen = 1 WHERE sender_id = ? AND receiver_id = ? AND seen = 0",
		senderID, receiverID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation seen: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

func (r *sqliteMessageRepo) MarkSeenByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE messages SET seen = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to mark message seen: %w", err)
	}
	return nil
}

func scanMessage(s rowScanner) (*models.Message, error) {
	var (
		m     models.Message
		text  sql.NullString
		image sql.NullString
	)
	if err := s.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &text, &image, &m.Seen, &m.CreatedAt); err != nil {
		return nil, err
	}
	if text.Valid {
		m.Text = &text.String
	}
	if image.Valid {
		m.Image = &image.String
	}
	return &m, nil
}
