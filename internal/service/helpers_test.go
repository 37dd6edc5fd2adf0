package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/proposal/internal/cache"
	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/alexanderramin/proposal/internal/llm"
	"github.com/alexanderramin/proposal/internal/repository"
	"github.com/alexanderramin/proposal/internal/testutil"
	"github.com/stretchr/testify/require"
)

type intakeFixture struct {
	db       *sql.DB
	llm      *testutil.ScriptedLLM
	cache    *cache.Memory
	sessions *repository.SQLiteProposalSessionRepo
	messages *repository.SQLiteChatMessageRepo
	sections *repository.SQLiteSectionRepo
	observer *recordingUseCaseObserver
	svc      IntakeService
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newIntakeFixtureWithUoW(t, database, testutil.NewTestUoW(database))
}

func newIntakeFixtureWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *intakeFixture {
	t.Helper()
	f := &intakeFixture{
		db:       database,
		llm:      testutil.NewScriptedLLM(),
		cache:    cache.NewMemory(),
		sessions: repository.NewSQLiteProposalSessionRepo(database),
		messages: repository.NewSQLiteChatMessageRepo(database),
		sections: repository.NewSQLiteSectionRepo(database),
		observer: &recordingUseCaseObserver{},
	}
	f.svc = NewIntakeService(IntakeDeps{
		Sessions: f.sessions,
		Messages: f.messages,
		UoW:      uow,
		LLM:      f.llm,
		Cache:    f.cache,
	}, f.observer)
	return f
}

// question queues a dialogue reply that keeps the intake going.
func (f *intakeFixture) question(reason, question string) {
	f.llm.ReplyJSON(llm.TaskDialogue, intelligence.DialogueTurn{Reason: reason, Question: question})
}

// begin starts a session with a scripted first question.
func (f *intakeFixture) begin(t *testing.T) string {
	t.Helper()
	f.question("Starting with the client", "Who is the client for this proposal?")
	res, err := f.svc.BeginSession(context.Background())
	require.NoError(t, err)
	return res.SessionID
}

// seedSession inserts a session and its first assistant question directly.
func (f *intakeFixture) seedSession(t *testing.T, opts ...testutil.SessionOption) *domain.ProposalSession {
	t.Helper()
	ctx := context.Background()
	s := testutil.NewTestProposalSession(opts...)
	require.NoError(t, f.sessions.Create(ctx, s))
	require.NoError(t, f.messages.Append(ctx,
		testutil.NewTestChatMessage(s.ID, domain.RoleAssistant, "Who is the client for this proposal?")))
	return s
}

func (f *intakeFixture) log(t *testing.T, sessionID string) []domain.ChatMessage {
	t.Helper()
	msgs, err := f.messages.ListBySession(context.Background(), sessionID)
	require.NoError(t, err)
	return msgs
}

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingUseCaseObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
