package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCreditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credit",
		Aliases: []string{"credits"},
		Short:   "Record transfer, AP and other special credit",
	}

	cmd.AddCommand(
		newCreditAddCmd(app),
		newCreditRemoveCmd(app),
	)

	return cmd
}

func newCreditAddCmd(app *App) *cobra.Command {
	var typ, countsAs, description string

	cmd := &cobra.Command{
		Use:   "add <student>",
		Short: "Add special credit that counts toward a requirement category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			creditType := domain.CreditType(strings.ToLower(typ))
			if !domain.ValidCreditTypes[creditType] {
				return fmt.Errorf("credit type %q must be one of transfer, ap, dual_credit, waiver, other", typ)
			}
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := checkCategory(app, rec.DegreeType, countsAs); err != nil {
				return err
			}

			credit := domain.SpecialCredit{
				ID:          uuid.New().String(),
				Type:        creditType,
				Description: description,
				CountsAs:    countsAs,
			}
			if _, err := app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
				return r.AddSpecialCredit(credit)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s credit %s toward %s\n", credit.Type, formatter.TruncID(credit.ID), countsAs)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(domain.CreditTransfer), "Credit type: transfer, ap, dual_credit, waiver, other")
	cmd.Flags().StringVar(&countsAs, "counts-as", "", "Requirement category ID the credit satisfies (e.g. statistics)")
	cmd.Flags().StringVar(&description, "description", "", "What the credit is for")
	_ = cmd.MarkFlagRequired("counts-as")

	return cmd
}

// checkCategory verifies that id names a category of the student's degree.
// Undecided students may name any category of either degree.
func checkCategory(app *App, d domain.DegreeType, id string) error {
	degrees := []domain.DegreeType{d}
	if !d.Decided() {
		degrees = []domain.DegreeType{domain.DegreeMajor, domain.DegreeMinor}
	}
	for _, dt := range degrees {
		if _, ok := app.Catalog.Degree(dt).Resolve(id); ok {
			return nil
		}
	}
	return fmt.Errorf("unknown requirement category %q", id)
}

func newCreditRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <student> <credit-id>",
		Short: "Remove a special credit (ID prefix accepted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := resolveStudent(ctx, app, args[0])
			if err != nil {
				return err
			}
			_, err = app.Students.Mutate(ctx, rec.ID, func(r *domain.StudentRecord) error {
				var matches []string
				for _, c := range r.SpecialCredits {
					if strings.HasPrefix(c.ID, args[1]) {
						matches = append(matches, c.ID)
					}
				}
				switch len(matches) {
				case 0:
					return fmt.Errorf("no special credit matches %q", args[1])
				case 1:
					r.RemoveSpecialCredit(matches[0])
					return nil
				}
				return fmt.Errorf("credit ID prefix %q is ambiguous (%d matches)", args[1], len(matches))
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed special credit")
			return nil
		},
	}
}
