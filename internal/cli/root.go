package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/proposal/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and hooks used by CLI commands.
type App struct {
	Intake   service.IntakeService
	Sessions service.SessionService

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin and stdout are a terminal. It
	// decides the default for the chat view, the style form and styled
	// markdown. Nil means not interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "proposal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "proposal",
		Short: "Guided intake and drafting of business proposals",
		Long: `proposal interviews you about a project one question at a time, maps the
answers onto a twelve-field proposal schema, and drafts a structured
business proposal from those fields.

Start with "proposal intake", or run "proposal serve" for the HTTP API.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newIntakeCmd(app),
		newSessionsCmd(app),
		newFieldsCmd(app),
		newRenderCmd(app),
		newRenderCustomCmd(app),
		newLatestCmd(app),
	)

	return root
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("the HTTP server is not configured")
			}
			if err := app.Serve(cmd.Context()); err != nil {
				return fmt.Errorf("serving HTTP API: %w", err)
			}
			return nil
		},
	}
}
