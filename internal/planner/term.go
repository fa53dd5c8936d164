package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Season int

const (
	Spring Season = iota + 1
	Summer
	Fall
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	}
	return "Unknown"
}

// Term is one academic semester.
type Term struct {
	Season Season
	Year   int
}

var termPattern = regexp.MustCompile(`(?i)\b(spring|summer|fall)\s+(\d{4})\b`)

// ParseTerm extracts the first "<Season> <YYYY>" found in s. Anything else
// around it is ignored.
func ParseTerm(s string) (Term, bool) {
	m := termPattern.FindStringSubmatch(s)
	if m == nil {
		return Term{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return Term{}, false
	}
	var season Season
	switch strings.ToLower(m[1]) {
	case "spring":
		season = Spring
	case "summer":
		season = Summer
	default:
		season = Fall
	}
	return Term{Season: season, Year: year}, true
}

func (t Term) String() string {
	return fmt.Sprintf("%s %d", t.Season, t.Year)
}

// Next returns the following term. Summer is skipped unless includeSummer is
// set; the year increments after Fall.
func (t Term) Next(includeSummer bool) Term {
	switch t.Season {
	case Spring:
		if includeSummer {
			return Term{Season: Summer, Year: t.Year}
		}
		return Term{Season: Fall, Year: t.Year}
	case Summer:
		return Term{Season: Fall, Year: t.Year}
	default:
		return Term{Season: Spring, Year: t.Year + 1}
	}
}

// Compare orders terms chronologically.
func (t Term) Compare(o Term) int {
	if t.Year != o.Year {
		if t.Year < o.Year {
			return -1
		}
		return 1
	}
	switch {
	case t.Season < o.Season:
		return -1
	case t.Season > o.Season:
		return 1
	}
	return 0
}

const (
	// maxSemesters bounds the sequence toward a graduation term.
	maxSemesters = 10
	// defaultWindow is the length of the fallback sequence.
	defaultWindow = 4
)

// Semesters lists the terms from start through the graduation term. When the
// graduation term is missing, unparseable, before start, or further away than
// maxSemesters, a fixed Spring/Fall window of defaultWindow terms is returned.
func Semesters(start Term, graduation string, includeSummer bool) []Term {
	grad, ok := ParseTerm(graduation)
	if !ok || grad.Compare(start) < 0 {
		return defaultSemesters(start)
	}

	var terms []Term
	t := start
	for i := 0; i < maxSemesters; i++ {
		terms = append(terms, t)
		next := t.Next(includeSummer)
		if t.Compare(grad) >= 0 || next.Compare(grad) > 0 {
			return terms
		}
		t = next
	}
	return defaultSemesters(start)
}

func defaultSemesters(start Term) []Term {
	terms := make([]Term, 0, defaultWindow)
	t := start
	for len(terms) < defaultWindow {
		terms = append(terms, t)
		t = t.Next(false)
	}
	return terms
}

// CapstoneTerm is the Spring term at or before graduation. Capstone courses
// only run in Spring.
func CapstoneTerm(graduation string) (Term, bool) {
	grad, ok := ParseTerm(graduation)
	if !ok {
		return Term{}, false
	}
	return Term{Season: Spring, Year: grad.Year}, true
}
