package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var courseCodePattern = regexp.MustCompile(`^([A-Z]{2,5}) ?([0-9]{5})$`)

// NormalizeCourseCode upper-cases a course code and inserts the single space
// between prefix and number, so "math10043" becomes "MATH 10043".
func NormalizeCourseCode(code string) (string, error) {
	trimmed := strings.ToUpper(strings.Join(strings.Fields(code), " "))
	m := courseCodePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", fmt.Errorf("course code %q must be a 2-5 letter prefix followed by 5 digits (e.g. MATH 10043)", code)
	}
	return m[1] + " " + m[2], nil
}

// CoursePrefix returns the department prefix of a course code ("MATH" for
// "MATH 10043"), or the whole code when it has no space.
func CoursePrefix(code string) string {
	if i := strings.IndexByte(code, ' '); i > 0 {
		return code[:i]
	}
	return code
}
