package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/proposal/internal/cli/formatter"
	"github.com/alexanderramin/proposal/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newFieldsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fields ID",
		Short: "Show the proposal fields collected for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := app.Intake.GetFields(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(fields)
			}
			fmt.Fprintln(out, formatter.FormatFields(*fields))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the fields as JSON")
	return cmd
}

func newRenderCmd(app *App) *cobra.Command {
	var opts service.RenderOptions
	var useForm, raw bool

	cmd := &cobra.Command{
		Use:   "render ID",
		Short: "Draft the proposal document from the collected fields",
		Long: `Draft the proposal document from a session's fields and store it as the
session's latest document.

Style and tone are optional free-text modifiers, for example:
  render 3f2c... --style concise --tone friendly
  render 3f2c... --form`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if useForm {
				if !app.interactive() {
					return errors.New("--form needs an interactive terminal; use --style and --tone instead")
				}
				if err := renderOptionsForm(&opts).RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting the proposal...")
			doc, err := app.Intake.Render(ctx, args[0], opts)
			stop()
			if err != nil {
				return err
			}
			writeDocument(cmd, app, doc, raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Style, "style", "", "Writing style, e.g. concise or formal")
	cmd.Flags().StringVar(&opts.Tone, "tone", "", "Tone, e.g. professional or friendly")
	cmd.Flags().BoolVar(&useForm, "form", false, "Pick style and tone interactively")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	return cmd
}

func newRenderCustomCmd(app *App) *cobra.Command {
	var instruction string
	var raw bool

	cmd := &cobra.Command{
		Use:   "render-custom ID",
		Short: "Draft a one-off proposal variant from a free-form instruction",
		Long: `Draft the proposal with a free-form instruction in place of style and tone.
The result is printed only; the session's latest document is unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting the proposal...")
			doc, err := app.Intake.RenderCustom(cmd.Context(), args[0], instruction)
			stop()
			if err != nil {
				return err
			}
			writeDocument(cmd, app, doc, raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&instruction, "prompt", "", "Instruction for the draft (required)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newLatestCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "latest ID",
		Short: "Print the most recently rendered proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Intake.GetLatestDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDocument(cmd, app, doc, raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	return cmd
}

func writeDocument(cmd *cobra.Command, app *App, doc string, raw bool) {
	if raw {
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return
	}
	printDocument(cmd.OutOrStdout(), doc, app.interactive())
}
