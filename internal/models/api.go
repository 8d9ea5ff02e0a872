package models

import "github.com/google/uuid"

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WSMessage is the envelope pushed to connected clients over the websocket.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ConversationUpdate notifies a client that a conversation's preview changed
// and the list/detail views should be re-queried.
type ConversationUpdate struct {
	ConversationID  uuid.UUID `json:"conversation_id"`
	LastMessage     string    `json:"last_message"`
	LastMessageRole string    `json:"last_message_role"`
}
