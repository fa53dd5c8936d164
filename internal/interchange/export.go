package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/advisor/internal/domain"
)

var exportKeys = []string{
	KeyName,
	KeyDegreeType,
	KeyExpectedGraduation,
	KeyIncludeSummer,
	KeyCompletedCourses,
	KeyScheduledCourses,
	KeySpecialCredits,
	KeyCourseCategories,
	KeyGeneralElectives,
	KeyNotes,
}

// Export renders rec in the interchange format. generalElectives is only
// written when the student supplied an explicit list.
func Export(rec domain.StudentRecord) ([]byte, error) {
	doc, err := toDocument(rec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Write(&buf, exportKeys); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toDocument(rec domain.StudentRecord) (Document, error) {
	credits := rec.SpecialCredits
	if credits == nil {
		credits = []domain.SpecialCredit{}
	}
	creditsJSON, err := json.Marshal(credits)
	if err != nil {
		return nil, fmt.Errorf("encoding special credits: %w", err)
	}

	categories := rec.CourseCategories
	if categories == nil {
		categories = map[string]string{}
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encoding course categories: %w", err)
	}

	doc := Document{
		KeyName:               rec.Name,
		KeyDegreeType:         string(rec.DegreeType),
		KeyExpectedGraduation: rec.ExpectedGraduation,
		KeyIncludeSummer:      strconv.FormatBool(rec.IncludeSummer),
		KeyCompletedCourses:   strings.Join(rec.CompletedCourses, listSeparator),
		KeyScheduledCourses:   strings.Join(rec.ScheduledCourses, listSeparator),
		KeySpecialCredits:     string(creditsJSON),
		KeyCourseCategories:   string(categoriesJSON),
		KeyNotes:              rec.Notes,
	}
	if codes, ok := rec.ExplicitGeneralElectives(); ok {
		doc[KeyGeneralElectives] = strings.Join(codes, listSeparator)
	}
	return doc, nil
}
