package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"minichat-backend/internal/models"
)

// DefaultTitle is the placeholder given to new conversations. A conversation
// whose title is empty or still carries this prefix is eligible for automatic
// title generation on its next message.
const DefaultTitle = "New chat"

type conversationStore interface {
	Create(ctx context.Context, c *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error)
	UpdatePreview(ctx context.Context, id uuid.UUID, lastMessage, lastMessageRole string) error
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
}

type messageStore interface {
	Create(ctx context.Context, m *models.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
}

type replyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
	GenerateTitle(ctx context.Context, firstMessage string) (string, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ConversationService implements the conversation/message mutation protocol:
// create/list conversations, list messages, send a message, generate an
// image. The multi-step mutations are sequential and non-transactional; a
// failure mid-sequence leaves the prefix of writes already committed.
type ConversationService struct {
	conversations conversationStore
	messages      messageStore
	text          replyGenerator
	images        imageGenerator
	events        *redis.Client
}

func NewConversationService(
	conversations conversationStore,
	messages messageStore,
	text replyGenerator,
	images imageGenerator,
	events *redis.Client,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		text:          text,
		images:        images,
		events:        events,
	}
}

func (s *ConversationService) CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*models.Conversation, error) {
	if userID == uuid.Nil {
		return nil, &UnauthorizedError{Message: "Unauthenticated"}
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	conv := &models.Conversation{
		UserID: userID,
		Title:  title,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, &StorageError{Message: err.Error()}
	}

	return conv, nil
}

func (s *ConversationService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	if userID == uuid.Nil {
		return nil, &UnauthorizedError{Message: "Unauthenticated"}
	}

	conversations, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Message: err.Error()}
	}
	return conversations, nil
}

func (s *ConversationService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*models.Message, error) {
	if userID == uuid.Nil {
		return nil, &UnauthorizedError{Message: "Unauthenticated"}
	}

	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Conversation not found"}
		}
		return nil, &StorageError{Message: err.Error()}
	}
	if conv.UserID != userID {
		return nil, &ForbiddenError{Message: "Access denied"}
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, &StorageError{Message: err.Error()}
	}
	return messages, nil
}

// SendMessage runs one user turn: store the user message, get a model reply,
// store it, refresh the conversation preview, and regenerate the title when
// it is still the placeholder. Only the two inserts and the model call can
// fail the operation; preview and title updates are best effort.
func (s *ConversationService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (string, error) {
	if userID == uuid.Nil {
		return "", &UnauthorizedError{Message: "Unauthenticated"}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", &ValidationError{Fields: map[string]string{"content": "Content is required"}}
	}

	userMsg := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.RoleUser,
		Content:        &content,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return "", &StorageError{Message: err.Error()}
	}

	reply, err := s.text.GenerateReply(ctx, content)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	if reply == "" {
		return "", &GenerationError{Message: "Model returned an empty reply"}
	}

	botMsg := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.RoleBot,
		Content:        &reply,
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return "", &StorageError{Message: err.Error()}
	}

	if err := s.conversations.UpdatePreview(ctx, conversationID, reply, models.RoleBot); err != nil {
		log.Printf("Failed to update conversation preview %s: %v", conversationID, err)
	}

	s.maybeGenerateTitle(ctx, conversationID, content)

	s.publishUpdate(ctx, userID, conversationID, reply, models.RoleBot)

	return reply, nil
}

// GenerateImage runs one image turn: store the prompt as a user message, ask
// the image model, store the bot_image message, refresh the preview. When the
// model returns no usable image the stored prompt is left in place and the
// failure is surfaced to the caller.
func (s *ConversationService) GenerateImage(ctx context.Context, userID, conversationID uuid.UUID, prompt string) (string, error) {
	if userID == uuid.Nil {
		return "", &UnauthorizedError{Message: "Unauthenticated"}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ValidationError{Fields: map[string]string{"prompt": "Prompt is required"}}
	}

	userMsg := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.RoleUser,
		Content:        &prompt,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return "", &StorageError{Message: err.Error()}
	}

	imageURL, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		log.Printf("Image generation failed for conversation %s, prompt message %s kept: %v",
			conversationID, userMsg.ID, err)
		return "", err
	}

	botMsg := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.RoleBotImage,
		Content:        &prompt,
		ImageURL:       &imageURL,
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return "", &StorageError{Message: err.Error()}
	}

	if err := s.conversations.UpdatePreview(ctx, conversationID, "[Image]", models.RoleBotImage); err != nil {
		log.Printf("Failed to update conversation preview %s: %v", conversationID, err)
	}

	s.publishUpdate(ctx, userID, conversationID, "[Image]", models.RoleBotImage)

	return imageURL, nil
}

// maybeGenerateTitle replaces a placeholder title with a model-generated one.
// Best effort: every failure path is logged and swallowed.
func (s *ConversationService) maybeGenerateTitle(ctx context.Context, conversationID uuid.UUID, firstMessage string) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		log.Printf("Failed to load conversation %s for title generation: %v", conversationID, err)
		return
	}
	if conv.Title != "" && !strings.HasPrefix(conv.Title, DefaultTitle) {
		return
	}

	title, err := s.text.GenerateTitle(ctx, firstMessage)
	if err != nil {
		log.Printf("Failed to generate chat title for %s: %v", conversationID, err)
		return
	}

	title = strings.TrimSpace(strings.ReplaceAll(title, `"`, ""))
	if title == "" {
		return
	}

	if err := s.conversations.UpdateTitle(ctx, conversationID, title); err != nil {
		log.Printf("Failed to store generated title for %s: %v", conversationID, err)
	}
}

// publishUpdate tells the websocket hub that a conversation's preview changed
// so connected clients re-query the list and thread.
func (s *ConversationService) publishUpdate(ctx context.Context, userID, conversationID uuid.UUID, lastMessage, role string) {
	if s.events == nil {
		return
	}

	data, _ := json.Marshal(models.WSMessage{
		Type: "conversation_updated",
		Payload: models.ConversationUpdate{
			ConversationID:  conversationID,
			LastMessage:     lastMessage,
			LastMessageRole: role,
		},
	})
	if err := s.events.Publish(ctx, "user_updates:"+userID.String(), string(data)).Err(); err != nil {
		log.Printf("Failed to publish conversation update for %s: %v", userID, err)
	}
}
