package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"minichat-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	m.ID = uuid.New()

	query := `INSERT INTO messages (id, conversation_id, user_id, role, content, image_url)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		m.ID, m.ConversationID, m.UserID, m.Role, m.Content, m.ImageURL,
	).Scan(&m.CreatedAt)
}

// ListByConversation returns the full thread in display order.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, user_id, role, content, image_url, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := &models.Message{}
		err := rows.Scan(
			&m.ID, &m.ConversationID, &m.UserID, &m.Role, &m.Content, &m.ImageURL, &m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
