package services

import (
	"fmt"
	"log"
	"strings"

	"deployhub/internal/apperror"
	"deployhub/internal/models"

	"github.com/google/uuid"
)

// chatFallback is returned (and persisted) whenever the upstream call fails.
// The chat surface never bubbles upstream errors to the user.
const chatFallback = "I'm having trouble reaching the assistant right now. Please try again in a moment."

const chatSystemPrompt = "You are the support assistant for a web application deployment platform. Help users with deploying applications, custom subdomains, build configuration, analytics, and file sharing. Be concise and practical."

const publicChatSystemPrompt = "You are the public help assistant for a web application deployment platform. Answer general questions about the platform's features and pricing tiers. Do not discuss specific user accounts. Be concise."

type ChatStore interface {
	Create(conversation *models.ChatConversation) error
	GetByUserID(userID uuid.UUID, limit int) ([]models.ChatConversation, error)
}

type ChatService struct {
	conversations ChatStore
	analyzer      Analyzer
}

func NewChatService(conversations ChatStore, analyzer Analyzer) *ChatService {
	return &ChatService{conversations: conversations, analyzer: analyzer}
}

// Chat answers an authenticated user's message and records the exchange. The
// row is written only after the upstream call resolves, so the stored
// response is never empty.
func (s *ChatService) Chat(userID uuid.UUID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperror.ValidationFailed("message", "message is required")
	}

	response := s.resolve(chatSystemPrompt, message)

	conversation := &models.ChatConversation{
		UserID:   userID,
		Message:  message,
		Response: response,
	}
	if err := s.conversations.Create(conversation); err != nil {
		return "", fmt.Errorf("failed to record conversation: %w", err)
	}

	return response, nil
}

// PublicChat answers an anonymous message. Nothing is persisted.
func (s *ChatService) PublicChat(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperror.ValidationFailed("message", "message is required")
	}

	return s.resolve(publicChatSystemPrompt, message), nil
}

func (s *ChatService) History(userID uuid.UUID, limit int) ([]models.ChatConversation, error) {
	return s.conversations.GetByUserID(userID, limit)
}

func (s *ChatService) resolve(systemPrompt, message string) string {
	response, err := s.analyzer.Complete(systemPrompt, message, 1024, 0.7)
	if err != nil {
		log.Printf("chat: upstream unavailable: %v", err)
		return chatFallback
	}
	return response
}
