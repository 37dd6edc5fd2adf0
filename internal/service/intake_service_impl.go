package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/proposal/internal/cache"
	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/alexanderramin/proposal/internal/llm"
	"github.com/alexanderramin/proposal/internal/repository"
	"github.com/google/uuid"
)

// IntakeDeps are the collaborators of the intake service. Cache and Logger
// are optional.
type IntakeDeps struct {
	Sessions repository.ProposalSessionRepo
	Messages repository.ChatMessageRepo
	UoW      db.UnitOfWork
	LLM      llm.LLMClient
	Cache    cache.DocumentCache
	Logger   *slog.Logger
}

type intakeService struct {
	sessions   repository.ProposalSessionRepo
	messages   repository.ChatMessageRepo
	uow        db.UnitOfWork
	dialogue   intelligence.DialogueService
	extraction intelligence.ExtractionService
	documents  intelligence.DocumentService
	cache      cache.DocumentCache
	logger     *slog.Logger
	observer   UseCaseObserver
	now        func() time.Time
}

func NewIntakeService(deps IntakeDeps, observers ...UseCaseObserver) IntakeService {
	docCache := deps.Cache
	if docCache == nil {
		docCache = cache.Noop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &intakeService{
		sessions:   deps.Sessions,
		messages:   deps.Messages,
		uow:        deps.UoW,
		dialogue:   intelligence.NewDialogueService(deps.LLM),
		extraction: intelligence.NewExtractionService(deps.LLM),
		documents:  intelligence.NewDocumentService(deps.LLM),
		cache:      docCache,
		logger:     logger,
		observer:   useCaseObserverOrNoop(observers),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *intakeService) BeginSession(ctx context.Context) (result *TurnResult, err error) {
	startedAt := time.Now()
	var sessionID string
	defer func() { observe(ctx, s.observer, "begin-session", sessionID, startedAt, nil, &err) }()

	turn, err := s.dialogue.Open(ctx)
	if err != nil {
		return nil, &ModelUnavailableError{Role: "dialogue", Err: err}
	}

	now := s.now()
	session := domain.NewProposalSession(uuid.New().String(), now)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProposalSessionRepo(tx).Create(ctx, session); err != nil {
			return err
		}
		return repository.NewSQLiteChatMessageRepo(tx).Append(ctx, &domain.ChatMessage{
			SessionID: session.ID,
			Role:      domain.RoleAssistant,
			Text:      turn.Question,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("creating proposal session: %w", err)
	}
	sessionID = session.ID

	return &TurnResult{SessionID: session.ID, Turn: *turn}, nil
}

func (s *intakeService) Answer(ctx context.Context, sessionID, text string) (result *TurnResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "answer", sessionID, startedAt, fields, &err) }()

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "response", Reason: "answer text is required"}
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = s.appendMessage(ctx, sessionID, domain.RoleUser, text); err != nil {
		return nil, err
	}

	history, err := s.history(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turn, err := s.dialogue.Ask(ctx, history)
	if err != nil {
		return nil, &ModelUnavailableError{Role: "dialogue", Err: err}
	}

	if err = s.appendMessage(ctx, sessionID, domain.RoleAssistant, turn.Question); err != nil {
		return nil, err
	}

	result = &TurnResult{SessionID: sessionID, Turn: *turn, Complete: intelligence.IsComplete(*turn)}
	fields["complete"] = result.Complete
	if result.Complete {
		result.Extraction = s.extract(ctx, session)
		fields["extraction_succeeded"] = result.Extraction.Succeeded
	}
	return result, nil
}

// extract maps the full chat log onto the proposal fields and overwrites the
// session's fields with the result. Failures are logged and returned in the
// outcome, never as an error.
func (s *intakeService) extract(ctx context.Context, session *domain.ProposalSession) ExtractionOutcome {
	outcome := ExtractionOutcome{Attempted: true}

	err := func() error {
		history, err := s.history(ctx, session.ID)
		if err != nil {
			return err
		}
		extracted, err := s.extraction.Extract(ctx, history)
		if err != nil {
			return err
		}
		session.ApplyExtraction(extracted, s.now())
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteProposalSessionRepo(tx).UpdateFields(ctx, session)
		})
	}()

	if err != nil {
		var xe *intelligence.ExtractionError
		if !errors.As(err, &xe) {
			err = &intelligence.ExtractionError{Err: err}
		}
		outcome.Err = err
		s.logger.WarnContext(ctx, "field extraction failed",
			"session_id", session.ID,
			"error", err,
		)
		return outcome
	}

	outcome.Succeeded = true
	s.logger.InfoContext(ctx, "fields extracted",
		"session_id", session.ID,
		"progress", session.Progress,
	)
	return outcome
}

func (s *intakeService) GetFields(ctx context.Context, sessionID string) (*domain.ProposalFields, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &session.Fields, nil
}

func (s *intakeService) Render(ctx context.Context, sessionID string, opts RenderOptions) (doc string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"style": opts.Style, "tone": opts.Tone}
	defer func() { observe(ctx, s.observer, "render", sessionID, startedAt, fields, &err) }()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}

	instruction := intelligence.StyleToneInstruction(opts.Style, opts.Tone)
	doc, err = s.documents.Generate(ctx, session.Fields, instruction)
	if err != nil {
		return "", &ModelUnavailableError{Role: "generation", Err: err}
	}

	now := s.now()
	sections := domain.SplitSections(sessionID, doc, now)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProposalSessionRepo(tx).UpdateLatestDocument(ctx, sessionID, doc); err != nil {
			return err
		}
		return repository.NewSQLiteSectionRepo(tx).ReplaceForSession(ctx, sessionID, sections)
	})
	if err != nil {
		return "", fmt.Errorf("saving latest document: %w", err)
	}
	fields["sections"] = len(sections)

	if cerr := s.cache.Set(ctx, &cache.Document{SessionID: sessionID, Text: doc, RenderedAt: now}); cerr != nil {
		s.logger.WarnContext(ctx, "document cache write failed", "session_id", sessionID, "error", cerr)
	}
	return doc, nil
}

func (s *intakeService) RenderCustom(ctx context.Context, sessionID, instruction string) (doc string, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "render-custom", sessionID, startedAt, nil, &err) }()

	if strings.TrimSpace(instruction) == "" {
		return "", &ValidationError{Field: "prompt", Reason: "instruction is required"}
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}

	doc, err = s.documents.Generate(ctx, session.Fields, strings.TrimSpace(instruction))
	if err != nil {
		return "", &ModelUnavailableError{Role: "generation", Err: err}
	}
	return doc, nil
}

func (s *intakeService) GetLatestDocument(ctx context.Context, sessionID string) (string, error) {
	cached, err := s.cache.Get(ctx, sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "document cache read failed", "session_id", sessionID, "error", err)
	}
	if err == nil && cached != nil {
		return cached.Text, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !session.HasDocument() {
		return "", fmt.Errorf("latest document for session %s: %w", sessionID, repository.ErrNotFound)
	}
	return *session.LatestDocument, nil
}

func (s *intakeService) appendMessage(ctx context.Context, sessionID string, role domain.MessageRole, text string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteChatMessageRepo(tx).Append(ctx, &domain.ChatMessage{
			SessionID: sessionID,
			Role:      role,
			Text:      text,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		return fmt.Errorf("appending %s message: %w", role, err)
	}
	return nil
}

func (s *intakeService) history(ctx context.Context, sessionID string) ([]llm.Message, error) {
	log, err := s.messages.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return intelligence.ReconstructHistory(log)
}
