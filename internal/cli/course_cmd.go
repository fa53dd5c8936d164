package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "course",
		Aliases: []string{"courses"},
		Short:   "Record completed and scheduled courses",
	}

	cmd.AddCommand(
		newCourseCompleteCmd(app),
		newCourseUncompleteCmd(app),
		newCourseScheduleCmd(app),
		newCourseUnscheduleCmd(app),
		newCourseAssignCmd(app),
	)

	return cmd
}

// courseMutation resolves the student and codes, applies fn to each code in
// one transaction and prints one line per code.
func courseMutation(cmd *cobra.Command, app *App, args []string, fn func(r *domain.StudentRecord, code string) (string, error)) error {
	ctx := context.Background()
	codes, err := parseCourseCodes(args[1:])
	if err != nil {
		return err
	}
	rec, err := resolveStudent(ctx, app, args[0])
	if err != nil {
		return err
	}

	var lines []string
	_, err = app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
		lines = lines[:0]
		for _, code := range codes {
			line, err := fn(r, code)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func newCourseCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <student> <code>...",
		Short: "Mark courses as completed",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return courseMutation(cmd, app, args, func(r *domain.StudentRecord, code string) (string, error) {
				if !r.AddCompleted(code) {
					return formatter.Dim(code + " already completed"), nil
				}
				return fmt.Sprintf("%s %s %s", formatter.StyleGreen.Render("✔"), code, formatter.Dim(app.Catalog.Title(code))), nil
			})
		},
	}
}

func newCourseUncompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uncomplete <student> <code>...",
		Short: "Remove courses from the completed list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return courseMutation(cmd, app, args, func(r *domain.StudentRecord, code string) (string, error) {
				if !r.RemoveCompleted(code) {
					return formatter.Dim(code + " was not completed"), nil
				}
				return "Removed " + code, nil
			})
		},
	}
}

func newCourseScheduleCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "schedule <student> <code>...",
		Short: "Add courses to next semester's schedule",
		Long: `Add courses to next semester's schedule. Courses not offered next term and
courses excluded by one already selected are refused unless --force is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var warnings []string
			err := courseMutation(cmd, app, args, func(r *domain.StudentRecord, code string) (string, error) {
				if r.HasCompleted(code) {
					return formatter.Dim(code + " already completed"), nil
				}
				if !force {
					if !app.Catalog.IsOffered(code) {
						return "", fmt.Errorf("%s is not offered in %s (use --force to schedule anyway)", code, app.Catalog.Term())
					}
					selected := append(append([]string{}, r.CompletedCourses...), r.ScheduledCourses...)
					if msg, ok := app.Catalog.MutualExclusionMessage(code, selected); ok {
						return "", fmt.Errorf("%s: %s (use --force to schedule anyway)", code, msg)
					}
				}
				if msg, ok := app.Catalog.EnrollmentWarning(code); ok {
					warnings = append(warnings, fmt.Sprintf("%s: %s", code, msg))
				}
				if !r.AddScheduled(code) {
					return formatter.Dim(code + " already scheduled"), nil
				}
				return fmt.Sprintf("%s %s %s", formatter.StyleBlue.Render("+"), code, formatter.Dim(app.Catalog.Title(code))), nil
			})
			if err != nil {
				return err
			}
			printWarnings(cmd.OutOrStdout(), warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Schedule even when not offered or mutually excluded")
	return cmd
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, formatter.StyleYellow.Render("! "+msg))
	}
}

func newCourseUnscheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule <student> <code>...",
		Short: "Remove courses from next semester's schedule",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return courseMutation(cmd, app, args, func(r *domain.StudentRecord, code string) (string, error) {
				if !r.RemoveScheduled(code) {
					return formatter.Dim(code + " was not scheduled"), nil
				}
				return "Unscheduled " + code, nil
			})
		},
	}
}

func newCourseAssignCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "assign <student> <code> [dcElective|daElective|generalElectives]",
		Short: "Choose which category a flexible course counts toward",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			codeArgs := args[1:]
			if last := args[len(args)-1]; domain.FlexibleAssignments[last] {
				category = last
				codeArgs = args[1 : len(args)-1]
			}
			if category == "" && !clear {
				return fmt.Errorf("name a category (%s) or pass --clear", strings.Join(flexibleCategoryIDs(), ", "))
			}
			if len(codeArgs) == 0 {
				return fmt.Errorf("a course code is required")
			}

			return courseMutation(cmd, app, append([]string{args[0]}, codeArgs...), func(r *domain.StudentRecord, code string) (string, error) {
				course, ok := app.Catalog.CourseByCode(code)
				if !ok || !course.Flexible {
					return "", fmt.Errorf("%s is not a flexible course", code)
				}
				if category != "" && category != domain.CategoryGeneralElectives && !slices.Contains(course.EligibleCategories, category) {
					return "", fmt.Errorf("%s cannot count toward %s", code, category)
				}
				if err := r.AssignCategory(code, category); err != nil {
					return "", err
				}
				if category == "" {
					return "Cleared category for " + code, nil
				}
				return fmt.Sprintf("%s now counts toward %s", code, category), nil
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the category assignment")
	return cmd
}

func flexibleCategoryIDs() []string {
	return []string{domain.CategoryDCElective, domain.CategoryDAElective, domain.CategoryGeneralElectives}
}
