package interchange

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/alexanderramin/advisor/internal/domain"
)

// Import reads an export into a new record. A missing header fails the whole
// import. Malformed values in individual fields are logged and replaced by
// that field's default; the rest of the record is still imported. The
// returned record has no ID.
func Import(r io.Reader, logger *slog.Logger) (*domain.StudentRecord, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	rec := Convert(doc, logger)
	return &rec, nil
}

// Convert builds a record from a parsed document.
func Convert(doc Document, logger *slog.Logger) domain.StudentRecord {
	rec := domain.StudentRecord{
		Name:               doc[KeyName],
		ExpectedGraduation: doc[KeyExpectedGraduation],
		Notes:              doc[KeyNotes],
	}

	if v := doc[KeyDegreeType]; v != "" {
		dt, err := domain.ParseDegreeType(v)
		if err != nil {
			logger.Warn("import: ignoring degree type", "value", v, "error", err)
		}
		rec.DegreeType = dt
	}

	if v := doc[KeyIncludeSummer]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("import: ignoring includeSummer", "value", v, "error", err)
		}
		rec.IncludeSummer = b
	}

	rec.CompletedCourses = codeList(doc[KeyCompletedCourses], KeyCompletedCourses, logger)
	for _, code := range codeList(doc[KeyScheduledCourses], KeyScheduledCourses, logger) {
		rec.AddScheduled(code)
	}

	if v := doc[KeySpecialCredits]; v != "" {
		credits, err := decodeCredits(v, logger)
		if err != nil {
			logger.Warn("import: special credits are not valid JSON, using none", "error", err)
		}
		rec.SpecialCredits = credits
	}

	if v := doc[KeyCourseCategories]; v != "" {
		var raw map[string]string
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			logger.Warn("import: course categories are not valid JSON, using none", "error", err)
		}
		for code, category := range raw {
			norm, err := domain.NormalizeCourseCode(code)
			if err == nil {
				err = rec.AssignCategory(norm, category)
			}
			if err != nil {
				logger.Warn("import: dropping course category", "course", code, "category", category, "error", err)
			}
		}
	}

	if doc.Has(KeyGeneralElectives) {
		rec.SetGeneralElectives(codeList(doc[KeyGeneralElectives], KeyGeneralElectives, logger))
	}

	return rec
}

// codeList splits and normalizes a code list, dropping malformed and
// duplicate codes.
func codeList(value, key string, logger *slog.Logger) []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range splitList(value) {
		code, err := domain.NormalizeCourseCode(raw)
		if err != nil {
			logger.Warn("import: dropping course code", "field", key, "error", err)
			continue
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

func decodeCredits(value string, logger *slog.Logger) ([]domain.SpecialCredit, error) {
	var raw []domain.SpecialCredit
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("decoding special credits: %w", err)
	}
	var out []domain.SpecialCredit
	for _, c := range raw {
		if c.Type == "" || !domain.ValidCreditTypes[c.Type] {
			logger.Warn("import: unknown credit type, using other", "credit", c.ID, "type", c.Type)
			c.Type = domain.CreditOther
		}
		if c.ID == "" || c.CountsAs == "" {
			logger.Warn("import: dropping incomplete special credit", "credit", c.ID, "countsAs", c.CountsAs)
			continue
		}
		if slices.ContainsFunc(out, func(o domain.SpecialCredit) bool { return o.ID == c.ID }) {
			logger.Warn("import: dropping duplicate special credit", "credit", c.ID)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
