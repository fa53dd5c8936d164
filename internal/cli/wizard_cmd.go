package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard [student]",
		Short: "Walk through a student record step by step",
		Long: `Walk through a student record step by step. With no argument a new record
is created; otherwise the named student is edited. Needs an interactive terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the wizard needs an interactive terminal; use the student and course commands instead")
			}
			ctx := context.Background()

			var rec domain.StudentRecord
			if len(args) == 1 {
				existing, err := resolveStudent(ctx, app, args[0])
				if err != nil {
					return err
				}
				rec = *existing
			}

			final, err := tea.NewProgram(newWizardModel(app.Catalog, rec),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return fmt.Errorf("running wizard: %w", err)
			}
			m, ok := final.(*wizardModel)
			if !ok || !m.done {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled. Nothing was saved."))
				return nil
			}

			return saveWizardRecord(ctx, cmd, app, m.rec)
		},
	}
}

func saveWizardRecord(ctx context.Context, cmd *cobra.Command, app *App, rec domain.StudentRecord) error {
	if rec.ID == "" {
		if err := app.Students.Create(ctx, &rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", formatter.Bold(rec.Name), formatter.TruncID(rec.ID))
		return nil
	}
	if _, err := app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
		created := r.CreatedAt
		*r = rec.Clone()
		r.CreatedAt = created
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", formatter.Bold(rec.Name))
	return nil
}
