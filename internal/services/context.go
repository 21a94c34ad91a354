package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/modes"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

// fallbackSystemPrompt is the minimal context used when assembly fails.
const fallbackSystemPrompt = "You are an Arduino coding assistant."

// ContextService assembles the message list sent to the model for each
// request: system prompt, rolling summary, semantically relevant prior
// exchanges, mode-specific context, and a verbatim window of recent
// messages, in that order.
type ContextService struct {
	messages       repository.MessageRepository
	summaries      *SummaryService
	retrieval      *RetrievalService
	recentMessages int
	log            *logrus.Logger
}

// NewContextService creates a context service. recentMessages is the
// default history window for sessions that do not set their own.
func NewContextService(
	messages repository.MessageRepository,
	summaries *SummaryService,
	retrieval *RetrievalService,
	recentMessages int,
	log *logrus.Logger,
) *ContextService {
	return &ContextService{
		messages:       messages,
		summaries:      summaries,
		retrieval:      retrieval,
		recentMessages: recentMessages,
		log:            log,
	}
}

// historyWindow returns how many recent messages to include for this
// session.
func (s *ContextService) historyWindow(session *models.Session) int {
	if session.HistoryWindowSize > 0 {
		return session.HistoryWindowSize
	}
	return s.recentMessages
}

// Assemble builds the context for the current (already mode-processed)
// user message. The current message itself is not appended here; the
// recent window skips any stored message with identical content so it is
// never duplicated. Assembly never fails: when the recent window cannot
// be loaded the context degrades to a bare system prompt.
func (s *ContextService) Assemble(
	ctx context.Context,
	conversationID uuid.UUID,
	session *models.Session,
	user *models.User,
	handler modes.Handler,
	currentMessage string,
) []providers.Message {
	recent, err := s.messages.ListRecent(ctx, conversationID, s.historyWindow(session))
	if err != nil {
		s.log.WithError(err).Error("failed to build context")
		return []providers.Message{{Role: providers.RoleSystem, Content: fallbackSystemPrompt}}
	}

	assembled := []providers.Message{
		{Role: providers.RoleSystem, Content: handler.SystemPrompt()},
	}

	if summary := s.summaries.Current(ctx, conversationID, session, user, handler); summary != nil {
		assembled = append(assembled, providers.Message{
			Role:    providers.RoleSystem,
			Content: "Summary of previous conversation: " + summary.Content,
		})
	}

	if relevant := s.retrieval.FindRelevant(ctx, conversationID, currentMessage); len(relevant) > 0 {
		var b strings.Builder
		b.WriteString("Relevant previous exchanges:\n")
		for _, m := range relevant {
			b.WriteString(m.Sender)
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n\n")
		}
		assembled = append(assembled, providers.Message{Role: providers.RoleSystem, Content: b.String()})
	}

	assembled = append(assembled, handler.AdditionalContext()...)

	// Recent messages run oldest to newest; ListRecent returns newest
	// first.
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Content == currentMessage {
			continue
		}
		role := providers.RoleAssistant
		if recent[i].Sender == models.SenderUser {
			role = providers.RoleUser
		}
		assembled = append(assembled, providers.Message{Role: role, Content: recent[i].Content})
	}

	return assembled
}
