package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/spf13/cobra"
)

func newElectivesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "electives",
		Short: "Choose which completed courses count as general electives",
	}

	cmd.AddCommand(
		newElectivesSetCmd(app),
		newElectivesClearCmd(app),
	)

	return cmd
}

func newElectivesSetCmd(app *App) *cobra.Command {
	var none bool

	cmd := &cobra.Command{
		Use:   "set <student> [code]...",
		Short: "Set the general electives explicitly (--none confirms zero)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var codes []string
			switch {
			case none && len(args) > 1:
				return fmt.Errorf("--none cannot be combined with course codes")
			case !none:
				var err error
				if codes, err = parseCourseCodes(args[1:]); err != nil {
					return err
				}
			}

			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
				var missing []string
				for _, code := range codes {
					if !r.HasCompleted(code) {
						missing = append(missing, code)
					}
				}
				if len(missing) > 0 {
					return fmt.Errorf("not completed: %s (record them with 'course complete' first)", strings.Join(missing, ", "))
				}
				r.SetGeneralElectives(codes)
				return nil
			})
			if err != nil {
				return err
			}

			if len(updated.GeneralElectives) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "General electives confirmed as none")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "General electives: %s\n", strings.Join(updated.GeneralElectives, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&none, "none", false, "Confirm the student has no general electives")
	return cmd
}

func newElectivesClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <student>",
		Short: "Go back to inferring general electives from completed courses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
				r.ClearGeneralElectives()
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "General electives will be inferred")
			return nil
		},
	}
}
