package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/spf13/cobra"
)

func newStudentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "student",
		Aliases: []string{"students"},
		Short:   "Manage saved student records",
	}

	cmd.AddCommand(
		newStudentAddCmd(app),
		newStudentListCmd(app),
		newStudentShowCmd(app),
		newStudentSetCmd(app),
		newStudentRemoveCmd(app),
	)

	return cmd
}

func validateGraduation(term string) error {
	if term == "" {
		return nil
	}
	if _, ok := planner.ParseTerm(term); !ok {
		return fmt.Errorf("graduation term %q must look like \"Spring 2028\"", term)
	}
	return nil
}

func newStudentAddCmd(app *App) *cobra.Command {
	var (
		degree     domain.DegreeType
		graduation string
		summer     bool
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGraduation(graduation); err != nil {
				return err
			}
			rec := &domain.StudentRecord{
				Name:               args[0],
				DegreeType:         degree,
				ExpectedGraduation: graduation,
				IncludeSummer:      summer,
				Notes:              notes,
			}
			if err := app.Students.Create(context.Background(), rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", formatter.Bold(rec.Name), formatter.TruncID(rec.ID))
			return nil
		},
	}

	addDegreeFlag(cmd.Flags(), &degree, "Degree type (major or minor)")
	cmd.Flags().StringVar(&graduation, "graduation", "", "Expected graduation term, e.g. \"Spring 2028\"")
	cmd.Flags().BoolVar(&summer, "summer", false, "Include summer terms when planning")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form advising notes")

	return cmd
}

func newStudentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.Students.List(context.Background())
			if err != nil {
				return err
			}
			if len(students) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No students found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStudentList(students))
			return nil
		},
	}
}

func newStudentShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <student>",
		Short: "Show a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := resolveStudent(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStudent(rec, app.Catalog))
			return nil
		},
	}
}

func newStudentSetCmd(app *App) *cobra.Command {
	var (
		degree     domain.DegreeType
		name       string
		graduation string
		summer     bool
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "set <student>",
		Short: "Change degree type, graduation term, summer planning, name or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			flags := cmd.Flags()
			if flags.NFlag() == 0 {
				return fmt.Errorf("nothing to change; pass at least one flag")
			}
			if err := validateGraduation(graduation); err != nil {
				return err
			}
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
				if flags.Changed("degree") {
					r.DegreeType = degree
				}
				if flags.Changed("name") {
					r.Name = name
				}
				if flags.Changed("graduation") {
					r.ExpectedGraduation = graduation
				}
				if flags.Changed("summer") {
					r.IncludeSummer = summer
				}
				if flags.Changed("notes") {
					r.Notes = notes
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.Bold(updated.Name))
			return nil
		},
	}

	addDegreeFlag(cmd.Flags(), &degree, "Degree type (major or minor)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&graduation, "graduation", "", "Expected graduation term, e.g. \"Spring 2028\"")
	cmd.Flags().BoolVar(&summer, "summer", false, "Include summer terms when planning")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form advising notes")

	return cmd
}

func newStudentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <student>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a student record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Students.Delete(ctx, rec.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", rec.Name)
			return nil
		},
	}
}
