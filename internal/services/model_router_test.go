package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
)

func routerFixture() (*ModelRouter, *fakeProvider, *fakeProvider) {
	openaiProvider := &fakeProvider{name: "openai"}
	anthropicProvider := &fakeProvider{name: "anthropic"}
	registry := providers.NewRegistry("openai")
	registry.Register("openai", openaiProvider)
	registry.Register("anthropic", anthropicProvider)
	log, _ := test.NewNullLogger()
	return NewModelRouter(registry, testConfig(), log), openaiProvider, anthropicProvider
}

func TestResolveQueryModel_OverrideChain(t *testing.T) {
	router, _, _ := routerFixture()
	user := &models.User{DefaultQueryModel: "gpt-4"}

	tests := []struct {
		name    string
		session models.Session
		user    *models.User
		want    string
	}{
		{"session wins", models.Session{QueryModel: "gpt-4o"}, user, "gpt-4o"},
		{"user default next", models.Session{}, user, "gpt-4"},
		{"process default last", models.Session{}, &models.User{}, "gpt-3.5-turbo"},
		{"nil user", models.Session{}, nil, "gpt-3.5-turbo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.ResolveQueryModel(&tt.session, tt.user))
		})
	}
}

func TestResolveSummaryModel_OverrideChain(t *testing.T) {
	router, _, _ := routerFixture()

	session := &models.Session{SummaryModel: "gpt-4o-mini", QueryModel: "gpt-4o"}
	assert.Equal(t, "gpt-4o-mini", router.ResolveSummaryModel(session, nil))

	user := &models.User{DefaultSummaryModel: "claude-3-haiku-20240307"}
	assert.Equal(t, "claude-3-haiku-20240307", router.ResolveSummaryModel(&models.Session{}, user))

	assert.Equal(t, "gpt-3.5-turbo", router.ResolveSummaryModel(&models.Session{}, nil))
}

func TestResolveProvider_OverrideChain(t *testing.T) {
	router, openaiProvider, anthropicProvider := routerFixture()

	p := router.ResolveProvider(&models.Session{Provider: "anthropic"}, nil)
	assert.Same(t, providers.Provider(anthropicProvider), p)

	p = router.ResolveProvider(&models.Session{}, &models.User{DefaultProvider: "anthropic"})
	assert.Same(t, providers.Provider(anthropicProvider), p)

	p = router.ResolveProvider(&models.Session{}, nil)
	assert.Same(t, providers.Provider(openaiProvider), p)
}

func TestResolveProvider_UnknownFallsBackToDefaultWithWarning(t *testing.T) {
	openaiProvider := &fakeProvider{name: "openai"}
	registry := providers.NewRegistry("openai")
	registry.Register("openai", openaiProvider)
	log, hook := test.NewNullLogger()
	router := NewModelRouter(registry, testConfig(), log)

	p := router.ResolveProvider(&models.Session{Provider: "mistral"}, nil)

	assert.Same(t, providers.Provider(openaiProvider), p)
	if assert.Len(t, hook.Entries, 1) {
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Equal(t, "mistral", hook.LastEntry().Data["provider"])
	}
}

func TestResolveProvider_NilWhenDefaultMissing(t *testing.T) {
	registry := providers.NewRegistry("openai")
	log, _ := test.NewNullLogger()
	router := NewModelRouter(registry, testConfig(), log)

	assert.Nil(t, router.ResolveProvider(&models.Session{}, nil))
}
