package progress

import (
	"testing"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func record(d domain.DegreeType, completed ...string) domain.StudentRecord {
	return domain.StudentRecord{DegreeType: d, CompletedCourses: completed}
}

func category(t *testing.T, p *DegreeProgress, id string) CategoryProgress {
	t.Helper()
	require.NotNil(t, p)
	c, ok := p.Category(id)
	require.True(t, ok, "category %s missing", id)
	return c
}

func TestCompute_NilWithoutDegreeType(t *testing.T) {
	assert.Nil(t, Compute(testCatalog(t), record(domain.DegreeUndecided, "MATH 10043")))
}

func TestCompute_OneCoursePerRequiredCategory(t *testing.T) {
	p := Compute(testCatalog(t), record(domain.DegreeMajor,
		"ENGL 20813", "MATH 10043", "COSC 10603", "WRIT 40163"))

	for _, id := range []string{"intro", "statistics", "coding", "capstone"} {
		c := category(t, p, id)
		assert.True(t, c.IsComplete, "%s should be complete", id)
		assert.Equal(t, 1, c.Completed)
		assert.Equal(t, catalog.KindRequired, c.Kind)
	}
	assert.Equal(t, 12, p.CompletedHours)
	assert.Equal(t, 33, p.TotalHours)
	assert.Equal(t, 0, category(t, p, domain.CategoryGeneralElectives).Completed)
	assert.False(t, p.IsComplete)
	assert.True(t, category(t, p, "capstone").Capstone)
}

func TestCompute_MinorVsMajorShape(t *testing.T) {
	cat := testCatalog(t)

	minor := Compute(cat, record(domain.DegreeMinor))
	for _, id := range []string{domain.CategoryIntro, domain.CategoryDCElective, domain.CategoryDAElective} {
		_, ok := minor.Category(id)
		assert.False(t, ok, "minor should not report %s", id)
	}
	assert.Equal(t, 3, category(t, minor, domain.CategoryGeneralElectives).Required)
	assert.Equal(t, 18, minor.TotalHours)

	major := Compute(cat, record(domain.DegreeMajor))
	assert.Equal(t, 4, category(t, major, domain.CategoryGeneralElectives).Required)
}

func TestCompute_RequiredOverflowBecomesGeneralElective(t *testing.T) {
	p := Compute(testCatalog(t), record(domain.DegreeMajor, "MATH 10043", "INSC 20153"))

	stats := category(t, p, "statistics")
	assert.Equal(t, 1, stats.Completed)
	assert.True(t, stats.IsComplete)
	assert.Equal(t, []string{"MATH 10043"}, stats.CompletedCourses, "first match in completion order counts")

	ge := category(t, p, domain.CategoryGeneralElectives)
	assert.Equal(t, []string{"INSC 20153"}, ge.CompletedCourses)
}

func TestCompute_RequiredOverflowAvailableForExplicitSelection(t *testing.T) {
	rec := record(domain.DegreeMajor, "INSC 20153", "MATH 10043")
	rec.SetGeneralElectives(nil)

	ge := category(t, Compute(testCatalog(t), rec), domain.CategoryGeneralElectives)
	assert.Equal(t, []string{"MATH 10043"}, ge.CompletedCourses)
}

func TestCompute_ExplicitEmptyDiffersFromInference(t *testing.T) {
	cat := testCatalog(t)
	rec := record(domain.DegreeMajor, "WRIT 20333", "JOUR 30603")

	inferred := category(t, Compute(cat, rec), domain.CategoryGeneralElectives)
	assert.Equal(t, 2, inferred.Completed, "multimedia courses belong to no elective pool")

	rec.SetGeneralElectives([]string{})
	confirmed := category(t, Compute(cat, rec), domain.CategoryGeneralElectives)
	assert.Equal(t, 0, confirmed.Completed, "an explicit empty list confirms zero")
}

func TestCompute_ElectiveOverflow(t *testing.T) {
	cat := testCatalog(t)
	rec := record(domain.DegreeMajor, "ENGL 20833", "ENGL 30973", "COMM 30353")

	dc := category(t, Compute(cat, rec), domain.CategoryDCElective)
	assert.Equal(t, 2, dc.Completed)
	assert.Equal(t, []string{"ENGL 20833", "ENGL 30973"}, dc.CompletedCourses)
	assert.Equal(t, 0, category(t, Compute(cat, rec), domain.CategoryGeneralElectives).Completed,
		"inference never counts elective-pool courses")

	rec.SetGeneralElectives([]string{})
	ge := category(t, Compute(cat, rec), domain.CategoryGeneralElectives)
	assert.Equal(t, []string{"COMM 30353"}, ge.CompletedCourses, "explicit mode adds elective overflow")
}

func TestCompute_ExplicitGeneralElectivesOverrideElectives(t *testing.T) {
	rec := record(domain.DegreeMajor, "ENGL 30973", "INSC 30833")
	rec.SetGeneralElectives([]string{"ENGL 30973"})

	p := Compute(testCatalog(t), rec)
	assert.Equal(t, 0, category(t, p, domain.CategoryDCElective).Completed)
	assert.Equal(t, 1, category(t, p, domain.CategoryDAElective).Completed)
	assert.Equal(t, []string{"ENGL 30973"}, category(t, p, domain.CategoryGeneralElectives).CompletedCourses)
}

func TestCompute_ExplicitListIsDeduplicatedAgainstOverflow(t *testing.T) {
	rec := record(domain.DegreeMajor, "MATH 10043", "INSC 20153")
	rec.GeneralElectives = []string{"INSC 20153", "INSC 20153"}
	rec.GeneralElectivesSet = true

	ge := category(t, Compute(testCatalog(t), rec), domain.CategoryGeneralElectives)
	assert.Equal(t, []string{"INSC 20153"}, ge.CompletedCourses)
	assert.Equal(t, 1, ge.Completed)
}

func TestCompute_ExplicitGeneralElectivesMustBeCompleted(t *testing.T) {
	rec := record(domain.DegreeMajor, "ENGL 20813")
	rec.SetGeneralElectives([]string{"JOUR 30603", "WRIT 20333"})

	p := Compute(testCatalog(t), rec)
	ge := category(t, p, domain.CategoryGeneralElectives)
	assert.Zero(t, ge.Completed)
	assert.Empty(t, ge.CompletedCourses)
	assert.Equal(t, 3, p.CompletedHours)
}

func TestCompute_FlexibleCourseNeedsAssignment(t *testing.T) {
	cat := testCatalog(t)
	rec := record(domain.DegreeMajor, "ENGL 30833")

	p := Compute(cat, rec)
	assert.Equal(t, 0, category(t, p, domain.CategoryDCElective).Completed)
	assert.Equal(t, 0, category(t, p, domain.CategoryDAElective).Completed)
	assert.Equal(t, 0, category(t, p, domain.CategoryGeneralElectives).Completed, "unassigned flexible courses count nowhere")

	require.NoError(t, rec.AssignCategory("ENGL 30833", domain.CategoryDAElective))
	p = Compute(cat, rec)
	assert.Equal(t, 0, category(t, p, domain.CategoryDCElective).Completed)
	assert.Equal(t, []string{"ENGL 30833"}, category(t, p, domain.CategoryDAElective).CompletedCourses)

	require.NoError(t, rec.AssignCategory("ENGL 30833", domain.CategoryGeneralElectives))
	p = Compute(cat, rec)
	assert.Equal(t, 0, category(t, p, domain.CategoryDAElective).Completed)
	assert.Equal(t, []string{"ENGL 30833"}, category(t, p, domain.CategoryGeneralElectives).CompletedCourses)
}

func TestCompute_SpecialCreditsCountButAreNotListed(t *testing.T) {
	rec := record(domain.DegreeMajor)
	require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{ID: "ap-stats", Type: domain.CreditAP, CountsAs: "statistics"}))
	require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{ID: "xfer", Type: domain.CreditTransfer, CountsAs: domain.CategoryGeneralElectives}))

	p := Compute(testCatalog(t), rec)
	stats := category(t, p, "statistics")
	assert.True(t, stats.IsComplete)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.CreditCount)
	assert.Empty(t, stats.CompletedCourses)

	ge := category(t, p, domain.CategoryGeneralElectives)
	assert.Equal(t, 1, ge.Completed)
	assert.Empty(t, ge.CompletedCourses)
	assert.Equal(t, 6, p.CompletedHours)
}

func TestCompute_CompletionBoundaries(t *testing.T) {
	cat := testCatalog(t)
	cases := []struct {
		name      string
		completed []string
		credits   int
		want      int
		complete  bool
	}{
		{"one below", []string{"ENGL 20833"}, 0, 1, false},
		{"exactly at", []string{"ENGL 20833", "ENGL 30973"}, 0, 2, true},
		{"one above", []string{"ENGL 20833", "ENGL 30973", "COMM 30353"}, 0, 2, true},
		{"credit fills the gap", []string{"ENGL 20833"}, 1, 2, true},
		{"credits push past the cap", []string{"ENGL 20833", "ENGL 30973"}, 2, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := record(domain.DegreeMajor, tc.completed...)
			for i := 0; i < tc.credits; i++ {
				require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{
					ID: string(rune('a' + i)), CountsAs: domain.CategoryDCElective,
				}))
			}
			dc := category(t, Compute(cat, rec), domain.CategoryDCElective)
			assert.Equal(t, tc.want, dc.Completed)
			assert.Equal(t, tc.complete, dc.IsComplete)
			assert.LessOrEqual(t, len(dc.CompletedCourses), dc.Required)
		})
	}
}

func TestCompute_CompleteMajor(t *testing.T) {
	rec := record(domain.DegreeMajor,
		"ENGL 20813", "MATH 10043", "COSC 10603", "WRIT 40163",
		"ENGL 20833", "ENGL 30973", "INSC 30833",
		"WRIT 20333", "JOUR 30603", "ARDG 20133", "HCOL 40013",
	)
	p := Compute(testCatalog(t), rec)
	assert.True(t, p.IsComplete)
	assert.Equal(t, 33, p.CompletedHours)
	assert.Empty(t, p.Incomplete())
	assert.InDelta(t, 1.0, p.PercentComplete(), 1e-9)
}

func TestCompute_HoursCappedAtTotal(t *testing.T) {
	rec := record(domain.DegreeMinor, "MATH 10043", "COSC 10603", "WRIT 40163")
	for i := 0; i < 10; i++ {
		require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{
			ID: string(rune('a' + i)), CountsAs: domain.CategoryGeneralElectives,
		}))
	}
	p := Compute(testCatalog(t), rec)
	assert.Equal(t, 18, p.CompletedHours)
	assert.True(t, p.IsComplete)
}

func TestCompute_DoesNotMutateRecord(t *testing.T) {
	rec := record(domain.DegreeMajor, "MATH 10043", "INSC 20153", "ENGL 30833")
	require.NoError(t, rec.AssignCategory("ENGL 30833", domain.CategoryDCElective))
	rec.SetGeneralElectives([]string{"INSC 20153"})
	before := rec.Clone()

	first := Compute(testCatalog(t), rec)
	second := Compute(testCatalog(t), rec)

	assert.Equal(t, before, rec)
	assert.Equal(t, first, second)
}

func TestDegreeProgress_Helpers(t *testing.T) {
	p := Compute(testCatalog(t), record(domain.DegreeMinor, "MATH 10043", "WRIT 20333"))

	counted, ok := p.CountedIn("WRIT 20333")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryGeneralElectives, counted.ID)
	_, ok = p.CountedIn("COSC 10603")
	assert.False(t, ok)

	var ids []string
	for _, c := range p.Incomplete() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"coding", "capstone", domain.CategoryGeneralElectives}, ids)
	ge, _ := p.Category(domain.CategoryGeneralElectives)
	assert.Equal(t, 2, ge.Remaining())
}
