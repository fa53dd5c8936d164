package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the course catalog and next term's offerings",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogSearchCmd(app),
		newCatalogShowCmd(app),
		newCatalogOfferedCmd(app),
		newCatalogValidateCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var (
		category string
		degree   domain.DegreeType
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog courses, optionally for one requirement category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := app.Catalog.Courses()
			if category != "" {
				if !degree.Decided() {
					degree = domain.DegreeMajor
				}
				courses = app.Catalog.CoursesForCategory(category, degree, nil)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, app.Catalog))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Requirement category ID (e.g. dcElective, statistics)")
	addDegreeFlag(cmd.Flags(), &degree, "Degree whose requirement tree --category refers to (default major)")
	return cmd
}

func newCatalogSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find courses by code or title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := app.Catalog.Search(strings.Join(args, " "))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, app.Catalog))
			return nil
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show a course with its sections, prerequisites and warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseCourseCodes(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, code := range codes {
				course, ok := app.Catalog.CourseByCode(code)
				if !ok {
					return fmt.Errorf("course %s is not in the catalog", code)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, formatCourseDetail(app.Catalog, course))
			}
			return nil
		},
	}
}

func formatCourseDetail(cat *catalog.Catalog, c catalog.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(c.Code), c.Title)
	fmt.Fprintf(&b, "Category:  %s\n", c.Category)
	fmt.Fprintf(&b, "College:   %s\n", formatter.OrDash(c.College))
	if c.Flexible {
		fmt.Fprintf(&b, "Flexible:  counts toward %s\n", strings.Join(c.EligibleCategories, " or "))
	}
	if prereqs := cat.Prerequisites(c.Code); len(prereqs) > 0 {
		fmt.Fprintf(&b, "Prereqs:   %s %s\n", strings.Join(prereqs, ", "), formatter.Dim("(informational)"))
	}
	if msg, ok := cat.EnrollmentWarning(c.Code); ok {
		b.WriteString(formatter.StyleYellow.Render("! "+msg) + "\n")
	}
	if c.Description != "" {
		b.WriteString("\n" + c.Description + "\n")
	}
	if cat.IsOffered(c.Code) {
		b.WriteString("\n" + formatter.Header("Sections "+cat.Term()) + "\n")
		b.WriteString(formatter.FormatSections(cat.SectionsFor(c.Code)))
	}
	return b.String()
}

func newCatalogOfferedCmd(app *App) *cobra.Command {
	var (
		category string
		degree   domain.DegreeType
		student  string
	)

	cmd := &cobra.Command{
		Use:   "offered",
		Short: "List next term's offered courses",
		Long: `List next term's offered courses. With --category the list is limited to
courses that satisfy that requirement category; with --student the courses the
student has completed or scheduled are left out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var exclude, selected []string
			if student != "" {
				rec, err := resolveStudent(context.Background(), app, student)
				if err != nil {
					return err
				}
				exclude, selected = rec.CompletedCourses, rec.ScheduledCourses
				if !cmd.Flags().Changed("degree") {
					degree = rec.DegreeType
				}
			}

			var courses []catalog.Course
			if category != "" {
				if !degree.Decided() {
					degree = domain.DegreeMajor
				}
				courses = app.Catalog.OfferedCoursesForCategory(category, degree, exclude, selected)
			} else {
				skip := make(map[string]bool, len(exclude)+len(selected))
				for _, code := range append(append([]string{}, exclude...), selected...) {
					skip[code] = true
				}
				for _, c := range app.Catalog.Courses() {
					if app.Catalog.IsOffered(c.Code) && !skip[c.Code] {
						courses = append(courses, c)
					}
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Offered "+app.Catalog.Term()))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, app.Catalog))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Requirement category ID")
	cmd.Flags().StringVar(&student, "student", "", "Leave out this student's completed and scheduled courses")
	addDegreeFlag(cmd.Flags(), &degree, "Degree whose requirement tree --category refers to")
	return cmd
}

func newCatalogValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and requirements data for inconsistencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := catalog.Validate(app.Catalog)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatValidation(errs))
			if len(errs) > 0 {
				return fmt.Errorf("catalog data has %d problem(s)", len(errs))
			}
			return nil
		},
	}
}
