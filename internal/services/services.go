// Package services implements the conversation context engine: mode-aware
// prompt building, rolling summaries, embedding-similarity retrieval,
// context assembly, provider routing, and the per-user token budget.
package services

import (
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

// Repositories bundles the storage collaborators the services depend on.
type Repositories struct {
	Users         repository.UserRepository
	Sessions      repository.SessionRepository
	Conversations repository.ConversationRepository
	Messages      repository.MessageRepository
	Summaries     repository.SummaryRepository
	Embeddings    repository.EmbeddingRepository
	Budgets       repository.BudgetRepository
}

// Services is the wired service layer.
type Services struct {
	Router    *ModelRouter
	Budget    *BudgetService
	Retrieval *RetrievalService
	Summary   *SummaryService
	Context   *ContextService
	Chat      *ChatService
	Sessions  *SessionService
}

// New wires the full service layer from its collaborators.
func New(repos Repositories, registry *providers.Registry, cfg *config.Config, log *logrus.Logger) *Services {
	router := NewModelRouter(registry, cfg, log)
	budget := NewBudgetService(repos.Budgets, cfg.Budget.DailyTokens)
	retrieval := NewRetrievalService(repos.Messages, repos.Embeddings, registry, cfg.EmbeddingsProvider, cfg.Context.RetrievalLimit, log)
	summary := NewSummaryService(repos.Messages, repos.Summaries, router, cfg.Context.SummaryThreshold, log)
	contexts := NewContextService(repos.Messages, summary, retrieval, cfg.Context.RecentMessages, log)
	chat := NewChatService(repos.Sessions, repos.Users, repos.Conversations, repos.Messages, router, budget, contexts, log)
	sessions := NewSessionService(repos.Sessions, repos.Conversations, repos.Messages)

	return &Services{
		Router:    router,
		Budget:    budget,
		Retrieval: retrieval,
		Summary:   summary,
		Context:   contexts,
		Chat:      chat,
		Sessions:  sessions,
	}
}
