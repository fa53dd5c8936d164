package repository

import (
	"context"

	"github.com/alexanderramin/advisor/internal/domain"
)

// StudentRepo persists student records together with their course lists,
// special credits, category assignments and general elective selections.
type StudentRepo interface {
	Create(ctx context.Context, s *domain.StudentRecord) error
	GetByID(ctx context.Context, id string) (*domain.StudentRecord, error)
	GetByName(ctx context.Context, name string) (*domain.StudentRecord, error)
	List(ctx context.Context) ([]*domain.StudentRecord, error)
	// Update replaces the record and all of its child rows. Callers wrap it
	// in a UnitOfWork so the replacement is atomic.
	Update(ctx context.Context, s *domain.StudentRecord) error
	Delete(ctx context.Context, id string) error
}
