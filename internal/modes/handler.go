package modes

import (
	"strings"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
)

// ConversationState carries the message counts mode handlers key off.
// Counts are taken before the current user message is persisted, so a
// brand-new conversation sees MessageCount == 0.
type ConversationState struct {
	MessageCount          int
	AssistantMessageCount int
}

// Handler is the per-mode conversation policy: it builds the system
// prompt and transforms messages on their way in and out of the model.
type Handler interface {
	// SystemPrompt returns the system prompt for this mode.
	SystemPrompt() string

	// ProcessUserMessage transforms a user message before it is sent to
	// the model.
	ProcessUserMessage(content string) string

	// ProcessAIResponse transforms a model reply before it is shown to
	// the user.
	ProcessAIResponse(content string) string

	// AdditionalContext returns extra system messages for this mode.
	AdditionalContext() []providers.Message

	// WelcomeMessage returns the greeting shown when a session of this
	// mode is opened.
	WelcomeMessage() string
}

// BaseHandler implements generic behavior shared by all modes and serves
// as the fallback for unrecognized session types.
type BaseHandler struct {
	Session *models.Session
	State   ConversationState
}

// SystemPrompt builds the project preamble from the session's hardware
// context. Fields are included only when non-empty, in a fixed order.
func (h *BaseHandler) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("Project Name: ")
	b.WriteString(h.Session.Name)
	b.WriteString("\n")

	if h.Session.BoardType != "" {
		b.WriteString("Arduino Board: ")
		b.WriteString(h.Session.BoardType)
		b.WriteString("\n")
	}
	if h.Session.LibrariesText != "" {
		b.WriteString("Libraries: ")
		b.WriteString(h.Session.LibrariesText)
		b.WriteString("\n")
	}
	if h.Session.ComponentsText != "" {
		b.WriteString("Components: ")
		b.WriteString(h.Session.ComponentsText)
		b.WriteString("\n")
	}
	if h.Session.Description != "" {
		b.WriteString("Project Description: ")
		b.WriteString(h.Session.Description)
		b.WriteString("\n")
	}

	return "You are an Arduino coding assistant. The user is working on the following project:\n" + b.String()
}

// ProcessUserMessage returns the message unchanged.
func (h *BaseHandler) ProcessUserMessage(content string) string {
	return content
}

// ProcessAIResponse returns the response unchanged.
func (h *BaseHandler) ProcessAIResponse(content string) string {
	return content
}

// AdditionalContext returns no extra messages.
func (h *BaseHandler) AdditionalContext() []providers.Message {
	return nil
}

// WelcomeMessage returns the generic greeting.
func (h *BaseHandler) WelcomeMessage() string {
	return "Welcome! How can I help with your Arduino project today?"
}
