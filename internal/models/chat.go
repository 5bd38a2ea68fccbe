package models

import "github.com/google/uuid"

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. The question is
// answered against the stored transcript for (user_id, video_id).
type ChatRequest struct {
	UserID  uuid.UUID     `json:"user_id"`
	VideoID string        `json:"video_id"`
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}
