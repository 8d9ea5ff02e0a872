package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"minichat-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	c.ID = uuid.New()

	query := `INSERT INTO conversations (id, user_id, title)
		VALUES ($1, $2, $3) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, c.ID, c.UserID, c.Title).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	c := &models.Conversation{}
	query := `SELECT id, user_id, title, last_message, last_message_role, created_at, updated_at
		FROM conversations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.Title, &c.LastMessage, &c.LastMessageRole,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByUser returns the caller's conversations, most recently active first.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	query := `SELECT id, user_id, title, last_message, last_message_role, created_at, updated_at
		FROM conversations WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		c := &models.Conversation{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &c.LastMessage, &c.LastMessageRole,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}

// UpdatePreview bumps updated_at and stores the denormalized last-message
// preview used by the sidebar list.
func (r *ConversationRepo) UpdatePreview(ctx context.Context, id uuid.UUID, lastMessage, lastMessageRole string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE conversations SET updated_at = NOW(), last_message = $1, last_message_role = $2 WHERE id = $3",
		lastMessage, lastMessageRole, id,
	)
	return err
}

func (r *ConversationRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	_, err := r.pool.Exec(ctx, "UPDATE conversations SET title = $1 WHERE id = $2", title, id)
	return err
}
