package cli

import (
	"fmt"

	"github.com/alexanderramin/proposal/internal/cli/formatter"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Inspect and manage intake sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsShowCmd(app),
		newSessionsHistoryCmd(app),
		newSessionsSectionsCmd(app),
		newSessionsStatusCmd(app, "archive", domain.SessionArchived, true),
		newSessionsStatusCmd(app, "deactivate", domain.SessionInactive, false),
		newSessionsStatusCmd(app, "activate", domain.SessionActive, false),
	)

	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sessions, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList(sessions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived sessions")
	return cmd
}

func newSessionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionDetail(s))
			return nil
		},
	}
}

func newSessionsHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ID",
		Short: "Print the chat log of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Sessions.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(msgs))
			return nil
		},
	}
}

func newSessionsSectionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sections ID",
		Short: "List the sections of the latest rendered proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := app.Sessions.Sections(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSections(sections))
			return nil
		},
	}
}

// newSessionsStatusCmd builds a command that moves a session to status.
// confirm asks before acting unless --yes is given.
func newSessionsStatusCmd(app *App, use string, status domain.SessionStatus, confirm bool) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: fmt.Sprintf("Mark a session %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if confirm && !yes {
				msg := fmt.Sprintf("Mark session %s %s? [y/N]: ", id, status)
				if !promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), msg) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Sessions.SetStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s is now %s.\n", id, status)
			return nil
		},
	}

	if confirm {
		cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	}
	return cmd
}
