package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateDefaults(ctx context.Context, id uuid.UUID, provider, queryModel, summaryModel string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.DefaultProvider = provider
	u.DefaultQueryModel = queryModel
	u.DefaultSummaryModel = summaryModel
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*models.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	var out []*models.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *models.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*models.Conversation)}
}

func (r *fakeConversationRepo) GetOrCreate(ctx context.Context, sessionID uuid.UUID) (*models.Conversation, error) {
	if c, ok := r.conversations[sessionID]; ok {
		return c, nil
	}
	c := &models.Conversation{ID: uuid.New(), SessionID: sessionID, CreatedAt: time.Now()}
	r.conversations[sessionID] = c
	return c, nil
}

// fakeClock hands out strictly increasing timestamps so creation order
// is unambiguous across repos sharing it.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fakeMessageRepo struct {
	messages []models.Message
	clock    *fakeClock
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: newFakeClock()}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = r.clock.next()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) inConversation(conversationID uuid.UUID) []models.Message {
	var out []models.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	return r.inConversation(conversationID), nil
}

func (r *fakeMessageRepo) ListSince(ctx context.Context, conversationID uuid.UUID, after time.Time) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.inConversation(conversationID) {
		if m.CreatedAt.After(after) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	all := r.inConversation(conversationID)
	var out []models.Message
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *fakeMessageRepo) ListBySender(ctx context.Context, conversationID uuid.UUID, sender string) ([]models.Message, error) {
	all := r.inConversation(conversationID)
	var out []models.Message
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Sender == sender {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error) {
	return len(r.inConversation(conversationID)), nil
}

func (r *fakeMessageRepo) CountBySender(ctx context.Context, conversationID uuid.UUID, sender string) (int, error) {
	count := 0
	for _, m := range r.inConversation(conversationID) {
		if m.Sender == sender {
			count++
		}
	}
	return count, nil
}

type fakeSummaryRepo struct {
	summaries []models.ConversationSummary
	clock     *fakeClock
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{clock: newFakeClock()}
}

func (r *fakeSummaryRepo) Create(ctx context.Context, summary *models.ConversationSummary) error {
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = r.clock.next()
	}
	r.summaries = append(r.summaries, *summary)
	return nil
}

func (r *fakeSummaryRepo) Latest(ctx context.Context, conversationID uuid.UUID) (*models.ConversationSummary, error) {
	var latest *models.ConversationSummary
	for i := range r.summaries {
		s := r.summaries[i]
		if s.ConversationID != conversationID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = &s
		}
	}
	return latest, nil
}

type fakeEmbeddingRepo struct {
	embeddings map[uuid.UUID]models.Vector
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{embeddings: make(map[uuid.UUID]models.Vector)}
}

func (r *fakeEmbeddingRepo) Get(ctx context.Context, messageID uuid.UUID) (*models.MessageEmbedding, error) {
	if v, ok := r.embeddings[messageID]; ok {
		return &models.MessageEmbedding{MessageID: messageID, Embedding: v}, nil
	}
	return nil, nil
}

func (r *fakeEmbeddingRepo) Create(ctx context.Context, embedding *models.MessageEmbedding) error {
	if _, ok := r.embeddings[embedding.MessageID]; ok {
		return nil // first write wins
	}
	r.embeddings[embedding.MessageID] = embedding.Embedding
	return nil
}

type fakeBudgetRepo struct {
	budgets map[uuid.UUID]*models.UserBudget
	now     func() time.Time
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		budgets: make(map[uuid.UUID]*models.UserBudget),
		now:     time.Now,
	}
}

func (r *fakeBudgetRepo) GetOrCreate(ctx context.Context, userID uuid.UUID, maxTokens int) (*models.UserBudget, error) {
	if b, ok := r.budgets[userID]; ok {
		return b, nil
	}
	b := &models.UserBudget{
		UserID:          userID,
		TokensRemaining: maxTokens,
		MaxTokens:       maxTokens,
		LastReset:       r.now(),
	}
	r.budgets[userID] = b
	return b, nil
}

func (r *fakeBudgetRepo) Reset(ctx context.Context, userID uuid.UUID) (*models.UserBudget, error) {
	b, ok := r.budgets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if b.LastReset.Before(today) {
		b.TokensRemaining = b.MaxTokens
		b.LastReset = now
	}
	return b, nil
}

func (r *fakeBudgetRepo) Debit(ctx context.Context, userID uuid.UUID, tokens int) (*models.UserBudget, error) {
	b, ok := r.budgets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.TokensRemaining -= tokens
	if b.TokensRemaining < 0 {
		b.TokensRemaining = 0
	}
	return b, nil
}

// fakeProvider is a scripted provider.
type fakeProvider struct {
	name          string
	completeFn    func(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error)
	embedFn       func(ctx context.Context, text string) ([]float64, error)
	completeCalls []providers.CompletionRequest
	embedCalls    []string
}

func (p *fakeProvider) Name() string {
	if p.name == "" {
		return "fake"
	}
	return p.name
}

func (p *fakeProvider) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	p.completeCalls = append(p.completeCalls, req)
	if p.completeFn != nil {
		return p.completeFn(ctx, req)
	}
	return &providers.CompletionResponse{Content: "ok", Model: "fake-model", TotalTokens: 10}, nil
}

func (p *fakeProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.embedCalls = append(p.embedCalls, text)
	if p.embedFn != nil {
		return p.embedFn(ctx, text)
	}
	return []float64{1, 0, 0}, nil
}

func (p *fakeProvider) GetModels(ctx context.Context) ([]providers.Model, error) {
	return []providers.Model{{ID: "fake-model", Name: "Fake Model"}}, nil
}
