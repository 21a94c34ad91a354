package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/modes"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

const summaryInstruction = "Please summarize this conversation, focusing on important technical details, questions asked, and solutions provided. Keep the summary concise but include all important information."

// SummaryService maintains the rolling conversation summary. The first
// summary is generated as soon as the conversation has any messages;
// after that a new one is generated once enough messages have
// accumulated past the previous one, and the stored summary is reused
// as-is in between.
type SummaryService struct {
	messages  repository.MessageRepository
	summaries repository.SummaryRepository
	router    *ModelRouter
	threshold int
	log       *logrus.Logger
}

// NewSummaryService creates a summary service regenerating after
// threshold new messages.
func NewSummaryService(
	messages repository.MessageRepository,
	summaries repository.SummaryRepository,
	router *ModelRouter,
	threshold int,
	log *logrus.Logger,
) *SummaryService {
	return &SummaryService{
		messages:  messages,
		summaries: summaries,
		router:    router,
		threshold: threshold,
		log:       log,
	}
}

// Current returns the summary to use for this conversation, regenerating
// it first when enough new messages have arrived. Generation failures
// degrade to the previous summary (or none), never to an error: the
// conversation proceeds without a fresh summary.
func (s *SummaryService) Current(
	ctx context.Context,
	conversationID uuid.UUID,
	session *models.Session,
	user *models.User,
	handler modes.Handler,
) *models.ConversationSummary {
	latest, err := s.summaries.Latest(ctx, conversationID)
	if err != nil {
		s.log.WithError(err).Warn("failed to load latest summary")
		return nil
	}

	total, err := s.messages.CountByConversation(ctx, conversationID)
	if err != nil {
		s.log.WithError(err).Warn("failed to count messages for summary")
		return latest
	}

	if latest != nil && total-latest.MessageCount < s.threshold {
		return latest
	}
	// Nothing to summarize yet.
	if latest == nil && total == 0 {
		return nil
	}

	summary, err := s.generate(ctx, conversationID, session, user, handler, latest, total)
	if err != nil {
		s.log.WithError(err).Error("failed to generate conversation summary")
		return latest
	}
	return summary
}

// generate produces and stores a new summary covering the conversation
// up to its current message count.
func (s *SummaryService) generate(
	ctx context.Context,
	conversationID uuid.UUID,
	session *models.Session,
	user *models.User,
	handler modes.Handler,
	latest *models.ConversationSummary,
	total int,
) (*models.ConversationSummary, error) {
	var transcript strings.Builder
	var msgs []models.Message
	var err error

	if latest != nil {
		msgs, err = s.messages.ListSince(ctx, conversationID, latest.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to list new messages: %w", err)
		}
		transcript.WriteString("Previous summary: ")
		transcript.WriteString(latest.Content)
		transcript.WriteString("\n\nNew messages:\n")
	} else {
		msgs, err = s.messages.ListByConversation(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		transcript.WriteString("Conversation:\n")
	}

	for _, m := range msgs {
		transcript.WriteString(m.Sender)
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}

	provider := s.router.ResolveProvider(session, user)
	if provider == nil {
		return nil, fmt.Errorf("no provider available for summary")
	}
	model := s.router.ResolveSummaryModel(session, user)

	resp, err := provider.Complete(ctx, providers.CompletionRequest{
		Messages: []providers.Message{
			{
				Role:    providers.RoleSystem,
				Content: handler.SystemPrompt() + "\n\n" + summaryInstruction + "\nmodel: " + model,
			},
			{Role: providers.RoleUser, Content: transcript.String()},
		},
		Temperature: 0.5,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	summary := &models.ConversationSummary{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Content:        resp.Content,
		MessageCount:   total,
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}
	return summary, nil
}
