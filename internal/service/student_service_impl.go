package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/advisor/internal/db"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/repository"
	"github.com/google/uuid"
)

type studentService struct {
	students repository.StudentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewStudentService(students repository.StudentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) StudentService {
	return &studentService{
		students: students,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *studentService) Create(ctx context.Context, rec *domain.StudentRecord) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-student",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"degree_type": string(rec.DegreeType)},
		})
	}()

	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return fmt.Errorf("student name is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStudentRepo(tx).Create(ctx, rec)
	})
}

func (s *studentService) GetByID(ctx context.Context, id string) (*domain.StudentRecord, error) {
	return s.students.GetByID(ctx, id)
}

func (s *studentService) Resolve(ctx context.Context, ref string) (*domain.StudentRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("student reference is required")
	}

	rec, err := s.students.GetByID(ctx, ref)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rec, err = s.students.GetByName(ctx, ref)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.StudentRecord
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, strings.ToLower(ref)) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("student %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("student %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *studentService) List(ctx context.Context) ([]*domain.StudentRecord, error) {
	return s.students.List(ctx)
}

func (s *studentService) Update(ctx context.Context, rec *domain.StudentRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStudentRepo(tx).Update(ctx, rec)
	})
}

func (s *studentService) Mutate(ctx context.Context, id string, fn func(*domain.StudentRecord) error) (rec *domain.StudentRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-student",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"student_id": id},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStudentRepo(tx)
		loaded, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(loaded); err != nil {
			return err
		}
		loaded.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, loaded); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStudentRepo(tx).Delete(ctx, id)
	})
}
