// Package interchange reads and writes the flat key/value advising export: a
// header token line followed by "key,value" CSV records.
package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header is the first line of every export.
const Header = "DCDA_ADVISING_EXPORT"

// Field keys, in the order Export writes them.
const (
	KeyName               = "name"
	KeyDegreeType         = "degreeType"
	KeyExpectedGraduation = "expectedGraduation"
	KeyIncludeSummer      = "includeSummer"
	KeyCompletedCourses   = "completedCourses"
	KeyScheduledCourses   = "scheduledCourses"
	KeySpecialCredits     = "specialCredits"
	KeyCourseCategories   = "courseCategories"
	KeyGeneralElectives   = "generalElectives"
	KeyNotes              = "notes"

	// keyPlannedCourses is the name older exports used for scheduledCourses.
	keyPlannedCourses = "plannedCourses"
)

// listSeparator joins course codes inside a single value.
const listSeparator = ";"

var ErrMissingHeader = errors.New("not an advising export: missing " + Header + " header")

// Document is the raw key/value content of an export. Keys that were not
// present are absent from the map, which keeps "not supplied" distinct from
// "supplied empty".
type Document map[string]string

// Has reports whether key was present.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// ParseDocument reads an export. The header must be the first non-blank
// record; later duplicate keys overwrite earlier ones.
func ParseDocument(r io.Reader) (Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	doc := make(Document)
	seenHeader := false
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export: %w", err)
		}
		if !seenHeader {
			if strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")) != Header {
				return nil, ErrMissingHeader
			}
			seenHeader = true
			continue
		}
		key := strings.TrimSpace(rec[0])
		if key == "" {
			continue
		}
		if key == keyPlannedCourses {
			if doc.Has(KeyScheduledCourses) {
				continue
			}
			key = KeyScheduledCourses
		}
		value := ""
		if len(rec) > 1 {
			value = strings.Join(rec[1:], ",")
		}
		doc[key] = value
	}
	if !seenHeader {
		return nil, ErrMissingHeader
	}
	return doc, nil
}

// Write emits the header and the given keys of d in order. Keys absent from d
// are skipped.
func (d Document) Write(w io.Writer, keys []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, k := range keys {
		v, ok := d[k]
		if !ok {
			continue
		}
		if err := cw.Write([]string{k, v}); err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
