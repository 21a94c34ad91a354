package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/modes"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

// providerFailureReply is returned to the user when the completion call
// fails. It is stored as a regular assistant message and costs nothing.
const providerFailureReply = "I'm sorry, I encountered an error generating a response. Please try again later."

// ChatResult is the outcome of one handled user message.
type ChatResult struct {
	Reply           string `json:"reply"`
	TokensUsed      int    `json:"tokens_used"`
	TokensRemaining int    `json:"tokens_remaining"`
}

// ChatService orchestrates one conversational turn: budget gate, message
// persistence, context assembly, the completion call, and the debit.
type ChatService struct {
	sessions      repository.SessionRepository
	users         repository.UserRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	router        *ModelRouter
	budget        *BudgetService
	contexts      *ContextService
	log           *logrus.Logger
}

// NewChatService creates a chat service.
func NewChatService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	router *ModelRouter,
	budget *BudgetService,
	contexts *ContextService,
	log *logrus.Logger,
) *ChatService {
	return &ChatService{
		sessions:      sessions,
		users:         users,
		conversations: conversations,
		messages:      messages,
		router:        router,
		budget:        budget,
		contexts:      contexts,
		log:           log,
	}
}

// HandleUserMessage runs one full turn for the user's message in the
// given session. It returns a ChatError (budget exceeded, session not
// found, provider unavailable) for failures the caller must surface;
// every other failure degrades into a stored apology reply.
func (s *ChatService) HandleUserMessage(ctx context.Context, sessionID, userID uuid.UUID, content string) (*ChatResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newSessionNotFound(err)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, newSessionNotFound(repository.ErrNotFound)
	}

	// The gate runs before anything is persisted or any provider is
	// called, using a cheap estimate of the user's text alone.
	if _, err := s.budget.Gate(ctx, userID, EstimateTokens(content)); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	provider := s.router.ResolveProvider(session, user)
	if provider == nil {
		return nil, newProviderUnavailable(session.Provider)
	}
	model := s.router.ResolveQueryModel(session, user)

	conversation, err := s.conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	// Mode handlers key off counts taken before the current message is
	// stored, so the first message of a conversation sees zero.
	state, err := s.conversationState(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}
	handler := modes.NewHandler(session, state, s.log)

	userMessage := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		Sender:         models.SenderUser,
		Content:        content,
	}
	if err := s.messages.Create(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	processed := handler.ProcessUserMessage(content)

	prompt := s.contexts.Assemble(ctx, conversation.ID, session, user, handler, processed)
	if len(prompt) > 0 && prompt[0].Role == providers.RoleSystem {
		prompt[0].Content += "\nmodel: " + model
	}
	prompt = append(prompt, providers.Message{Role: providers.RoleUser, Content: processed})

	reply, tokensUsed := s.complete(ctx, provider, prompt, handler)

	assistantMessage := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		Sender:         models.SenderAssistant,
		Content:        reply,
	}
	if err := s.messages.Create(ctx, assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	budget, err := s.budget.Debit(ctx, userID, tokensUsed)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Reply:           reply,
		TokensUsed:      tokensUsed,
		TokensRemaining: budget.TokensRemaining,
	}, nil
}

// complete calls the provider and post-processes the reply. A failed
// call yields the apology reply at zero cost.
func (s *ChatService) complete(ctx context.Context, provider providers.Provider, prompt []providers.Message, handler modes.Handler) (string, int) {
	resp, err := provider.Complete(ctx, providers.CompletionRequest{
		Messages:    prompt,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		s.log.WithError(err).WithField("provider", provider.Name()).Error("completion call failed")
		return providerFailureReply, 0
	}
	return handler.ProcessAIResponse(resp.Content), resp.TotalTokens
}

func (s *ChatService) conversationState(ctx context.Context, conversationID uuid.UUID) (modes.ConversationState, error) {
	total, err := s.messages.CountByConversation(ctx, conversationID)
	if err != nil {
		return modes.ConversationState{}, fmt.Errorf("failed to count messages: %w", err)
	}
	assistant, err := s.messages.CountBySender(ctx, conversationID, models.SenderAssistant)
	if err != nil {
		return modes.ConversationState{}, fmt.Errorf("failed to count assistant messages: %w", err)
	}
	return modes.ConversationState{MessageCount: total, AssistantMessageCount: assistant}, nil
}
