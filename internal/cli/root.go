package cli

import (
	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and reference data every command works against.
type App struct {
	Students service.StudentService
	Advising service.AdvisingService
	Catalog  *catalog.Catalog

	// IsInteractive reports whether stdin is a terminal. The wizard refuses
	// to start when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "advisor" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Degree progress advisor for the DCDA major and minor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStudentCmd(app),
		newCourseCmd(app),
		newCreditCmd(app),
		newElectivesCmd(app),
		newProgressCmd(app),
		newPlanCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newReportCmd(app),
		newCatalogCmd(app),
		newWizardCmd(app),
	)

	return root
}
