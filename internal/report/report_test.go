package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/alexanderramin/advisor/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(t *testing.T) (Summary, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	rec := domain.StudentRecord{
		Name:               "Riley Park",
		DegreeType:         domain.DegreeMajor,
		ExpectedGraduation: "Spring 2027",
		CompletedCourses:   []string{"ENGL 20813", "MATH 10043", "INSC 20153"},
		ScheduledCourses:   []string{"COSC 10603"},
		Notes:              "Prefers online sections — check modality.",
	}
	require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{ID: "t1", Type: domain.CreditTransfer, CountsAs: domain.CategoryDCElective}))
	p := progress.Compute(cat, rec)
	plan := planner.Plan(planner.Input{
		Start:              planner.Term{Season: planner.Spring, Year: 2026},
		Scheduled:          rec.ScheduledCourses,
		Needed:             planner.NeedsFrom(p),
		ExpectedGraduation: rec.ExpectedGraduation,
	})
	return Summary{
		Record:      rec,
		Progress:    p,
		Plan:        plan,
		GeneratedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}, cat
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestProgressDataset(t *testing.T) {
	s, _ := summary(t)
	ds := ProgressDataset(s.Progress)

	require.Len(t, ds.Rows, len(s.Progress.Categories))
	intro := ds.Rows[0]
	assert.Equal(t, "Complete", intro[colStatus])
	assert.Equal(t, "required", intro[colType])
	assert.Equal(t, "ENGL 20813", intro[colCourses])

	var dc map[string]string
	for i, c := range s.Progress.Categories {
		if c.ID == domain.CategoryDCElective {
			dc = ds.Rows[i]
		}
	}
	require.NotNil(t, dc)
	assert.Equal(t, "In progress", dc[colStatus])
	assert.Equal(t, "1 special credit(s)", dc[colCourses])
	assert.Equal(t, "1", dc[colRemaining])
}

func TestProgressDataset_NoDegree(t *testing.T) {
	ds := ProgressDataset(nil)
	assert.NotEmpty(t, ds.Headers)
	assert.Empty(t, ds.Rows)
}

func TestPlanDataset(t *testing.T) {
	s, cat := summary(t)
	ds := PlanDataset(s.Plan, cat)

	require.NotEmpty(t, ds.Rows)
	first := ds.Rows[0]
	assert.Equal(t, "Spring 2026", first[colTerm])
	assert.Equal(t, "COSC 10603", first[colCode])
	assert.NotEqual(t, "COSC 10603", first[colTitle], "title comes from the catalog")

	placeholders := 0
	for _, row := range ds.Rows {
		if row[colCode] == planner.Placeholder {
			placeholders++
			assert.Equal(t, "To be determined", row[colTitle])
		}
	}
	assert.Positive(t, placeholders)
}

func TestCSV(t *testing.T) {
	s, _ := summary(t)
	out, err := CSV(s)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+len(s.Progress.Categories))
	assert.Equal(t, []string{colCategory, colType, colRequired, colCompleted, colRemaining, colStatus, colCourses}, rows[0])

	again, err := CSV(s)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRenderCSV_RequiresHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	s, cat := summary(t)
	out, err := PDF(s, cat)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDF_WithoutDegree(t *testing.T) {
	out, err := PDF(Summary{Record: domain.StudentRecord{Name: "New Student"}}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
