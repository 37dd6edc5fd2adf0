package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/proposal/internal/cli/formatter"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/alexanderramin/proposal/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newIntakeCmd(app *App) *cobra.Command {
	var sessionID string
	var useTUI bool

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Answer questions to build a proposal",
		Long: `Start a proposal intake, or resume one with --session.

The assistant asks one question at a time. When it has enough information
it closes the intake and maps your answers onto the proposal fields.

Commands while answering:
  /fields   show the fields collected so far
  /render   draft the proposal from the current fields
  /quit     leave; the session is saved and can be resumed

On a terminal the chat view is used; pass --tui=false for the line prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, opening, err := openIntake(ctx, app, sessionID, out)
			if err != nil {
				return err
			}

			tui := app.interactive()
			if cmd.Flags().Changed("tui") {
				tui = useTUI
			}
			if tui {
				err = runIntakeTUI(ctx, app, cmd, id, opening)
			} else {
				err = runIntakeLoop(ctx, app, cmd.InOrStdin(), out, cmd.ErrOrStderr(), id, opening)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Session saved. Resume with: proposal intake --session %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Resume an existing session")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Use the full-screen chat view (default on a terminal)")
	return cmd
}

// openIntake begins a new session, or loads the last question of an
// existing one.
func openIntake(ctx context.Context, app *App, sessionID string, out io.Writer) (string, intelligence.DialogueTurn, error) {
	if sessionID == "" {
		stop := formatter.StartSpinner(out, "Preparing the first question...")
		res, err := app.Intake.BeginSession(ctx)
		stop()
		if err != nil {
			return "", intelligence.DialogueTurn{}, fmt.Errorf("starting intake: %w", err)
		}
		return res.SessionID, res.Turn, nil
	}

	msgs, err := app.Sessions.History(ctx, sessionID)
	if err != nil {
		return "", intelligence.DialogueTurn{}, err
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.RoleAssistant {
			return sessionID, intelligence.DialogueTurn{Question: msgs[i].Text}, nil
		}
	}
	return "", intelligence.DialogueTurn{}, fmt.Errorf("session %s has no question to resume from", sessionID)
}

// runIntakeLoop is the line-oriented intake used when no terminal is
// attached or --tui=false is given. It returns nil on /quit or EOF.
func runIntakeLoop(ctx context.Context, app *App, in io.Reader, out, errOut io.Writer, sessionID string, opening intelligence.DialogueTurn) error {
	fmt.Fprint(out, formatter.FormatIntakeWelcome(sessionID))
	fmt.Fprint(out, formatter.FormatTurn(opening))

	for {
		fmt.Fprint(out, "> ")
		input, err := readInputLine(in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "/quit", "/exit", "/q":
			return nil
		case "/fields":
			fields, err := app.Intake.GetFields(ctx, sessionID)
			if err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, formatter.FormatFields(*fields))
			continue
		case "/render":
			stop := formatter.StartSpinner(out, "Drafting the proposal...")
			doc, err := app.Intake.Render(ctx, sessionID, service.RenderOptions{})
			stop()
			if err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
				continue
			}
			printDocument(out, doc, false)
			continue
		}

		stop := formatter.StartSpinner(out, "Thinking...")
		res, err := app.Intake.Answer(ctx, sessionID, input)
		stop()
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}

		fmt.Fprint(out, "\n"+formatter.FormatTurn(res.Turn))
		if res.Complete {
			fmt.Fprint(out, formatter.FormatIntakeComplete(res.Extraction.Err))
		}
	}
}

func runIntakeTUI(ctx context.Context, app *App, cmd *cobra.Command, sessionID string, opening intelligence.DialogueTurn) error {
	model := newIntakeChatModel(ctx, app.Intake, sessionID, opening)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running chat view: %w", err)
	}
	return nil
}

// printDocument writes a proposal as rendered markdown, falling back to the
// raw text when rendering fails.
func printDocument(w io.Writer, doc string, styled bool) {
	rendered, err := formatter.RenderMarkdown(doc, 80, styled)
	if err != nil {
		fmt.Fprintln(w, doc)
		return
	}
	fmt.Fprint(w, rendered)
}
