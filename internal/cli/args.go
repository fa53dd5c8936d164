package cli

import (
	"context"
	"fmt"
	"regexp"

	"github.com/alexanderramin/advisor/internal/domain"
)

var (
	prefixToken = regexp.MustCompile(`^[A-Za-z]{2,5}$`)
	numberToken = regexp.MustCompile(`^[0-9]{5}$`)
)

// parseCourseCodes normalizes course codes given as arguments. A prefix and
// number passed as separate words ("MATH 10043" unquoted) are joined.
func parseCourseCodes(args []string) ([]string, error) {
	var codes []string
	for i := 0; i < len(args); i++ {
		raw := args[i]
		if prefixToken.MatchString(raw) && i+1 < len(args) && numberToken.MatchString(args[i+1]) {
			raw += " " + args[i+1]
			i++
		}
		code, err := domain.NormalizeCourseCode(raw)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("at least one course code is required")
	}
	return codes, nil
}

func resolveStudent(ctx context.Context, app *App, ref string) (*domain.StudentRecord, error) {
	rec, err := app.Students.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("finding student: %w", err)
	}
	return rec, nil
}
