package testutil

import (
	"time"

	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/google/uuid"
)

// Student options
type StudentOption func(*domain.StudentRecord)

func WithDegree(d domain.DegreeType) StudentOption {
	return func(s *domain.StudentRecord) {
		s.DegreeType = d
	}
}

func WithCompleted(codes ...string) StudentOption {
	return func(s *domain.StudentRecord) {
		for _, c := range codes {
			s.AddCompleted(c)
		}
	}
}

func WithScheduled(codes ...string) StudentOption {
	return func(s *domain.StudentRecord) {
		for _, c := range codes {
			s.AddScheduled(c)
		}
	}
}

func WithGraduation(term string) StudentOption {
	return func(s *domain.StudentRecord) {
		s.ExpectedGraduation = term
	}
}

func WithSummer() StudentOption {
	return func(s *domain.StudentRecord) {
		s.IncludeSummer = true
	}
}

func WithCategory(code, categoryID string) StudentOption {
	return func(s *domain.StudentRecord) {
		if s.CourseCategories == nil {
			s.CourseCategories = make(map[string]string)
		}
		s.CourseCategories[code] = categoryID
	}
}

func WithSpecialCredit(countsAs string, typ domain.CreditType) StudentOption {
	return func(s *domain.StudentRecord) {
		s.SpecialCredits = append(s.SpecialCredits, domain.SpecialCredit{
			ID:          uuid.New().String(),
			Type:        typ,
			Description: "test credit",
			CountsAs:    countsAs,
		})
	}
}

func WithGeneralElectives(codes ...string) StudentOption {
	return func(s *domain.StudentRecord) {
		s.SetGeneralElectives(codes)
	}
}

func WithNotes(notes string) StudentOption {
	return func(s *domain.StudentRecord) {
		s.Notes = notes
	}
}

func NewTestStudent(name string, opts ...StudentOption) *domain.StudentRecord {
	now := time.Now().UTC()
	s := &domain.StudentRecord{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
