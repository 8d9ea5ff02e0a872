package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. bot_image messages carry their payload in ImageURL and are
// rendered as images by the client.
const (
	RoleUser     = "user"
	RoleBot      = "bot"
	RoleBotImage = "bot_image"
)

type Conversation struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	LastMessage     *string   `json:"last_message"`
	LastMessageRole *string   `json:"last_message_role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uuid.UUID `json:"user_id"`
	Role           string    `json:"role"`
	Content        *string   `json:"content"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	Reply string `json:"reply"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateImageResponse struct {
	ImageURL string `json:"image_url"`
}
