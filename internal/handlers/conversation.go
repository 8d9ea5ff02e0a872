package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"minichat-backend/internal/middleware"
	"minichat-backend/internal/models"
)

type conversationService interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*models.Message, error)
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (string, error)
	GenerateImage(ctx context.Context, userID, conversationID uuid.UUID, prompt string) (string, error)
}

type ConversationHandler struct {
	service conversationService
}

func NewConversationHandler(service conversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConversationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
			return
		}
	}

	conv, err := h.service.CreateConversation(r.Context(), middleware.GetUserID(r.Context()), req.Title)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.service.ListConversations(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if conversations == nil {
		conversations = []*models.Conversation{}
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	messages, err := h.service.ListMessages(r.Context(), middleware.GetUserID(r.Context()), conversationID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if messages == nil {
		messages = []*models.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	reply, err := h.service.SendMessage(r.Context(), middleware.GetUserID(r.Context()), conversationID, req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SendMessageResponse{Reply: reply})
}

func (h *ConversationHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return
	}

	var req models.GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	imageURL, err := h.service.GenerateImage(r.Context(), middleware.GetUserID(r.Context()), conversationID, req.Prompt)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateImageResponse{ImageURL: imageURL})
}
