package service

import (
	"context"
	"io"

	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/alexanderramin/advisor/internal/progress"
	"github.com/alexanderramin/advisor/internal/report"
)

type StudentService interface {
	Create(ctx context.Context, s *domain.StudentRecord) error
	GetByID(ctx context.Context, id string) (*domain.StudentRecord, error)
	// Resolve accepts a full ID, an ID prefix or a student name.
	Resolve(ctx context.Context, ref string) (*domain.StudentRecord, error)
	List(ctx context.Context) ([]*domain.StudentRecord, error)
	Update(ctx context.Context, s *domain.StudentRecord) error
	// Mutate loads the record, applies fn and saves the result in one
	// transaction. Nothing is written when fn returns an error.
	Mutate(ctx context.Context, id string, fn func(*domain.StudentRecord) error) (*domain.StudentRecord, error)
	Delete(ctx context.Context, id string) error
}

type AdvisingService interface {
	Progress(ctx context.Context, id string) (*progress.DegreeProgress, error)
	Plan(ctx context.Context, id string) ([]planner.Semester, error)
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, r io.Reader, name string) (*domain.StudentRecord, error)
	Report(ctx context.Context, id string, format report.Format) ([]byte, error)
}
