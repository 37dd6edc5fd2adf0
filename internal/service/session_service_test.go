package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/proposal/internal/cache"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/repository"
	"github.com/alexanderramin/proposal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*repository.SQLiteProposalSessionRepo, *repository.SQLiteChatMessageRepo, *repository.SQLiteSectionRepo, SessionService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sessions := repository.NewSQLiteProposalSessionRepo(database)
	messages := repository.NewSQLiteChatMessageRepo(database)
	sections := repository.NewSQLiteSectionRepo(database)
	return sessions, messages, sections, NewSessionService(sessions, messages, sections, nil)
}

func TestSessionService_ListAndStatus(t *testing.T) {
	sessions, _, _, svc := newSessionFixture(t)
	ctx := context.Background()

	a := testutil.NewTestProposalSession(testutil.WithCreatedAt(time.Now().UTC().Add(-time.Minute)))
	b := testutil.NewTestProposalSession()
	require.NoError(t, sessions.Create(ctx, a))
	require.NoError(t, sessions.Create(ctx, b))

	require.NoError(t, svc.SetStatus(ctx, a.ID, domain.SessionArchived))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionArchived, got.Status)
}

func TestSessionService_SetStatus_Invalid(t *testing.T) {
	sessions, _, _, svc := newSessionFixture(t)
	ctx := context.Background()
	s := testutil.NewTestProposalSession()
	require.NoError(t, sessions.Create(ctx, s))

	err := svc.SetStatus(ctx, s.ID, "paused")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "status", ve.Field)

	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", domain.SessionInactive), repository.ErrNotFound)
}

func TestSessionService_HistoryAndSections(t *testing.T) {
	sessions, messages, sections, svc := newSessionFixture(t)
	ctx := context.Background()
	s := testutil.NewTestProposalSession()
	require.NoError(t, sessions.Create(ctx, s))

	require.NoError(t, messages.Append(ctx, testutil.NewTestChatMessage(s.ID, domain.RoleAssistant, "Who is the client?")))
	require.NoError(t, messages.Append(ctx, testutil.NewTestChatMessage(s.ID, domain.RoleUser, "Acme Corp")))
	require.NoError(t, sections.ReplaceForSession(ctx, s.ID,
		domain.SplitSections(s.ID, "# Executive Summary\nHello", time.Now())))

	history, err := svc.History(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Acme Corp", history[1].Text)

	secs, err := svc.Sections(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, "Hello", secs[0].Content)

	_, err = svc.History(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Sections(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, svc.Ping(ctx))
}

func TestSessionService_ArchiveEvictsCachedDocument(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := repository.NewSQLiteProposalSessionRepo(database)
	docs := cache.NewMemory()
	svc := NewSessionService(sessions, repository.NewSQLiteChatMessageRepo(database),
		repository.NewSQLiteSectionRepo(database), docs)
	ctx := context.Background()

	s := testutil.NewTestProposalSession()
	require.NoError(t, sessions.Create(ctx, s))
	require.NoError(t, docs.Set(ctx, &cache.Document{SessionID: s.ID, Text: "# Executive Summary", RenderedAt: time.Now()}))

	require.NoError(t, svc.SetStatus(ctx, s.ID, domain.SessionInactive))
	cached, err := docs.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, cached, "only archiving evicts")

	require.NoError(t, svc.SetStatus(ctx, s.ID, domain.SessionArchived))
	cached, err = docs.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
