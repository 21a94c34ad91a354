package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardboost/boardboost/internal/models"
)

func sessionServiceFixture() (*SessionService, *fakeMessageRepo) {
	messages := newFakeMessageRepo()
	return NewSessionService(newFakeSessionRepo(), newFakeConversationRepo(), messages), messages
}

func TestSessionCreate_Defaults(t *testing.T) {
	svc, _ := sessionServiceFixture()
	session := &models.Session{UserID: uuid.New()}

	require.NoError(t, svc.Create(context.Background(), session))

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, models.SessionTypeChat, session.SessionType)
	assert.Equal(t, "New Project", session.Name)
}

func TestSessionGet_OwnershipEnforced(t *testing.T) {
	svc, _ := sessionServiceFixture()
	owner := uuid.New()
	session := &models.Session{UserID: owner, Name: "Mine"}
	require.NoError(t, svc.Create(context.Background(), session))

	got, err := svc.Get(context.Background(), session.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Name)

	_, err = svc.Get(context.Background(), session.ID, uuid.New())
	var chatErr *ChatError
	require.ErrorAs(t, err, &chatErr)
	assert.Equal(t, KindSessionNotFound, chatErr.Kind)

	_, err = svc.Get(context.Background(), uuid.New(), owner)
	require.ErrorAs(t, err, &chatErr)
	assert.Equal(t, KindSessionNotFound, chatErr.Kind)
}

func TestSessionMessages_EmptyForFreshSession(t *testing.T) {
	svc, _ := sessionServiceFixture()
	owner := uuid.New()
	session := &models.Session{UserID: owner}
	require.NoError(t, svc.Create(context.Background(), session))

	msgs, err := svc.Messages(context.Background(), session.ID, owner)

	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSessionWelcome_PerMode(t *testing.T) {
	svc, _ := sessionServiceFixture()
	owner := uuid.New()
	session := &models.Session{UserID: owner, SessionType: models.SessionTypeLibrary}
	require.NoError(t, svc.Create(context.Background(), session))

	welcome, err := svc.Welcome(context.Background(), session.ID, owner)

	require.NoError(t, err)
	assert.Contains(t, welcome, "Library Learning Mode")
}

func TestSessionDelete(t *testing.T) {
	svc, _ := sessionServiceFixture()
	owner := uuid.New()
	session := &models.Session{UserID: owner}
	require.NoError(t, svc.Create(context.Background(), session))

	require.NoError(t, svc.Delete(context.Background(), session.ID, owner))

	_, err := svc.Get(context.Background(), session.ID, owner)
	assert.Error(t, err)
}
