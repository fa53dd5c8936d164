package interchange

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func fullRecord(t *testing.T) domain.StudentRecord {
	t.Helper()
	rec := domain.StudentRecord{
		Name:               "Avery Quinn",
		DegreeType:         domain.DegreeMajor,
		ExpectedGraduation: "Spring 2028",
		IncludeSummer:      true,
		CompletedCourses:   []string{"ENGL 20813", "MATH 10043", "ENGL 30833"},
		Notes:              "Talked about \"study abroad\",\nfollow up in March",
	}
	rec.AddScheduled("COSC 10603")
	rec.AddScheduled("INSC 30833")
	require.NoError(t, rec.AssignCategory("ENGL 30833", domain.CategoryDAElective))
	require.NoError(t, rec.AddSpecialCredit(domain.SpecialCredit{
		ID: "ap-1", Type: domain.CreditAP, Description: "AP Statistics, score 5", CountsAs: "statistics",
	}))
	rec.SetGeneralElectives([]string{"WRIT 20333"})
	return rec
}

func TestExport_Format(t *testing.T) {
	out, err := Export(fullRecord(t))
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	assert.Equal(t, Header, lines[0])
	assert.Contains(t, string(out), "name,Avery Quinn\n")
	assert.Contains(t, string(out), "completedCourses,ENGL 20813;MATH 10043;ENGL 30833\n")
	assert.Contains(t, string(out), "scheduledCourses,COSC 10603;INSC 30833\n")
	assert.Contains(t, string(out), "generalElectives,WRIT 20333\n")
	assert.Contains(t, string(out), `"{""ENGL 30833"":""daElective""}"`)
}

func TestExport_OmitsUnsetGeneralElectives(t *testing.T) {
	out, err := Export(domain.StudentRecord{Name: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), KeyGeneralElectives)
	assert.Contains(t, string(out), "specialCredits,[]\n")
	assert.Contains(t, string(out), "courseCategories,{}\n")
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]func() domain.StudentRecord{
		"full": func() domain.StudentRecord { return fullRecord(t) },
		"empty": func() domain.StudentRecord {
			return domain.StudentRecord{}
		},
		"confirmed zero general electives": func() domain.StudentRecord {
			rec := domain.StudentRecord{DegreeType: domain.DegreeMinor, CompletedCourses: []string{"COSC 10403"}}
			rec.SetGeneralElectives([]string{})
			return rec
		},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			want := build()
			out, err := Export(want)
			require.NoError(t, err)

			logger, logs := captureLogger()
			got, err := Import(bytes.NewReader(out), logger)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
			assert.Empty(t, logs.String())
		})
	}
}

func TestImport_MissingHeader(t *testing.T) {
	for _, in := range []string{"", "name,Avery\n", "\n\nNOT_AN_EXPORT\nname,Avery\n"} {
		got, err := Import(strings.NewReader(in), nil)
		assert.ErrorIs(t, err, ErrMissingHeader, "input %q", in)
		assert.Nil(t, got)
	}
}

func TestImport_LegacyPlannedCourses(t *testing.T) {
	in := Header + "\nname,Sam\nplannedCourses,MATH 10043;COSC 10603\n"
	got, err := Import(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH 10043", "COSC 10603"}, got.ScheduledCourses)
}

func TestImport_CurrentKeyWinsOverLegacy(t *testing.T) {
	in := Header + "\nscheduledCourses,ENGL 20813\nplannedCourses,MATH 10043\n"
	got, err := Import(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ENGL 20813"}, got.ScheduledCourses)
}

func TestImport_MalformedJSONFieldDefaults(t *testing.T) {
	in := strings.Join([]string{
		Header,
		"name,Jordan",
		"degreeType,minor",
		`specialCredits,"[{""id"": ""a"","`,
		`courseCategories,"not json"`,
		"completedCourses,math10043; COSC 10603",
	}, "\n")

	logger, logs := captureLogger()
	got, err := Import(strings.NewReader(in), logger)
	require.NoError(t, err)

	assert.Equal(t, "Jordan", got.Name)
	assert.Equal(t, domain.DegreeMinor, got.DegreeType)
	assert.Equal(t, []string{"MATH 10043", "COSC 10603"}, got.CompletedCourses)
	assert.Nil(t, got.SpecialCredits)
	assert.Nil(t, got.CourseCategories)
	assert.Contains(t, logs.String(), "special credits are not valid JSON")
	assert.Contains(t, logs.String(), "course categories are not valid JSON")
}

func TestImport_DropsInvalidValues(t *testing.T) {
	in := strings.Join([]string{
		Header,
		"degreeType,doctorate",
		"includeSummer,sometimes",
		"completedCourses,MATH 10043;bogus;MATH 10043",
		"scheduledCourses,MATH 10043;ENGL 20813",
		`courseCategories,"{""ENGL 30833"":""capstone"",""HIST 30943"":""dcElective""}"`,
		`specialCredits,"[{""id"":""x"",""type"":""mystery"",""countsAs"":""coding""},{""id"":"""",""countsAs"":""intro""},{""id"":""x"",""type"":""ap"",""countsAs"":""intro""}]"`,
	}, "\n")

	logger, logs := captureLogger()
	got, err := Import(strings.NewReader(in), logger)
	require.NoError(t, err)

	assert.Equal(t, domain.DegreeUndecided, got.DegreeType)
	assert.False(t, got.IncludeSummer)
	assert.Equal(t, []string{"MATH 10043"}, got.CompletedCourses)
	assert.Equal(t, []string{"ENGL 20813"}, got.ScheduledCourses, "completed courses are never also scheduled")
	assert.Equal(t, map[string]string{"HIST 30943": domain.CategoryDCElective}, got.CourseCategories)
	require.Len(t, got.SpecialCredits, 1)
	assert.Equal(t, domain.CreditOther, got.SpecialCredits[0].Type)
	assert.Equal(t, "coding", got.SpecialCredits[0].CountsAs)

	for _, msg := range []string{"ignoring degree type", "ignoring includeSummer", "dropping course code", "dropping course category", "unknown credit type", "dropping incomplete special credit", "dropping duplicate special credit"} {
		assert.Contains(t, logs.String(), msg)
	}
}

func TestImport_UnknownKeysIgnored(t *testing.T) {
	in := Header + "\nfavoriteColor,green\nname,Lee\n"
	got, err := Import(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "Lee", got.Name)
}

func TestImport_UnquotedCommasInValue(t *testing.T) {
	in := Header + "\nnotes,first, second, third\n"
	got, err := Import(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, "first, second, third", got.Notes)
}
