package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/report"
	"github.com/alexanderramin/advisor/internal/service"
	"github.com/spf13/cobra"
)

func degreeHint(err error) error {
	if errors.Is(err, service.ErrDegreeUndecided) {
		return fmt.Errorf("%w; set one with 'advisor student set <student> --degree major|minor'", err)
	}
	return err
}

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <student>",
		Short: "Show degree progress by requirement category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Advising.Progress(ctx, rec.ID)
			if err != nil {
				return degreeHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgress(rec.Name, p))
			return nil
		},
	}
}

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <student>",
		Short: "Spread the remaining requirements across semesters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Advising.Plan(ctx, rec.ID)
			if err != nil {
				return degreeHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan, app.Catalog))
			return nil
		},
	}
}

// writeOutput writes data to path, or to the command's stdout for "" or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <student>",
		Short: "Export a student record in the advising interchange format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Advising.Export(ctx, rec.ID)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a student from an interchange file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer f.Close()
				r = f
			}

			rec, err := app.Advising.Import(context.Background(), r, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %s (%d completed, %d scheduled)\n",
				formatter.Bold(rec.Name), formatter.TruncID(rec.ID), len(rec.CompletedCourses), len(rec.ScheduledCourses))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the new student (defaults to the name in the file)")
	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "report <student>",
		Short: "Write an advising report as CSV or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatPDF && (output == "" || output == "-") {
				return fmt.Errorf("PDF reports need --output")
			}
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Advising.Report(ctx, rec.ID, f)
			if err != nil {
				return degreeHint(err)
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", string(report.FormatCSV), "Report format: csv or pdf")
	return cmd
}
