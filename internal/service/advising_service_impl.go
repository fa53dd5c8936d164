package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/interchange"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/alexanderramin/advisor/internal/progress"
	"github.com/alexanderramin/advisor/internal/report"
	"github.com/alexanderramin/advisor/internal/repository"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"
)

// ErrDegreeUndecided is returned by use cases that need a degree type when
// the student has not chosen one.
var ErrDegreeUndecided = errors.New("degree type not chosen")

const defaultCacheSize = 256

// AdvisingOptions tunes the advising service. The zero value is usable.
type AdvisingOptions struct {
	// StartTerm overrides the catalog offerings term as the first planned
	// semester, e.g. "Fall 2026".
	StartTerm string
	CacheSize int
	// Logger receives import warnings. Nil discards them.
	Logger *slog.Logger
	// Now is used for report timestamps and the fallback start term.
	Now func() time.Time
}

type advisingService struct {
	catalog  *catalog.Catalog
	students StudentService
	opts     AdvisingOptions
	cache    *lru.Cache[string, *progress.DegreeProgress]
	observer UseCaseObserver
}

func NewAdvisingService(
	cat *catalog.Catalog,
	students StudentService,
	opts AdvisingOptions,
	observers ...UseCaseObserver,
) (AdvisingService, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cache, err := lru.New[string, *progress.DegreeProgress](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating progress cache: %w", err)
	}
	return &advisingService{
		catalog:  cat,
		students: students,
		opts:     opts,
		cache:    cache,
		observer: useCaseObserverOrNoop(observers),
	}, nil
}

// progressKey is the part of a record the engine reads. Timestamps, notes and
// the schedule do not affect progress and are left out of the cache key.
type progressKey struct {
	DegreeType          string
	Completed           []string
	SpecialCredits      []domain.SpecialCredit
	CourseCategories    map[string]string
	GeneralElectives    []string
	GeneralElectivesSet bool
}

// compute returns the memoized progress for rec. Results are shared between
// callers and must be treated as read-only.
func (s *advisingService) compute(rec domain.StudentRecord) (*progress.DegreeProgress, error) {
	hash, err := hashstructure.Hash(progressKey{
		DegreeType:          string(rec.DegreeType),
		Completed:           rec.CompletedCourses,
		SpecialCredits:      rec.SpecialCredits,
		CourseCategories:    rec.CourseCategories,
		GeneralElectives:    rec.GeneralElectives,
		GeneralElectivesSet: rec.GeneralElectivesSet,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("hashing student record: %w", err)
	}
	key := strconv.FormatUint(hash, 16)
	if p, ok := s.cache.Get(key); ok {
		return p, nil
	}
	p := progress.Compute(s.catalog, rec)
	if p == nil {
		return nil, ErrDegreeUndecided
	}
	s.cache.Add(key, p)
	return p, nil
}

func (s *advisingService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *advisingService) Progress(ctx context.Context, id string) (p *progress.DegreeProgress, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": id}
	defer func() { s.observe(ctx, "progress", startedAt, err, fields) }()

	rec, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err = s.compute(*rec)
	if err != nil {
		return nil, err
	}
	fields["completed_hours"] = p.CompletedHours
	fields["total_hours"] = p.TotalHours
	return p, nil
}

func (s *advisingService) Plan(ctx context.Context, id string) (plan []planner.Semester, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": id}
	defer func() { s.observe(ctx, "plan", startedAt, err, fields) }()

	rec, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err = s.plan(*rec)
	if err != nil {
		return nil, err
	}
	fields["semesters"] = len(plan)
	return plan, nil
}

// plan counts scheduled courses as if already completed, so the remaining
// needs exclude them, and places them in the first semester.
func (s *advisingService) plan(rec domain.StudentRecord) ([]planner.Semester, error) {
	projected := rec.Clone()
	for _, code := range rec.ScheduledCourses {
		projected.AddCompleted(code)
	}
	p, err := s.compute(projected)
	if err != nil {
		return nil, err
	}

	scheduledCategories := make(map[string]string, len(rec.ScheduledCourses))
	for _, code := range rec.ScheduledCourses {
		if c, ok := p.CountedIn(code); ok {
			scheduledCategories[code] = c.Name
		}
	}

	return planner.Plan(planner.Input{
		Start:               s.startTerm(),
		Scheduled:           rec.ScheduledCourses,
		ScheduledCategories: scheduledCategories,
		Needed:              planner.NeedsFrom(p),
		ExpectedGraduation:  rec.ExpectedGraduation,
		IncludeSummer:       rec.IncludeSummer,
	}), nil
}

// startTerm prefers the configured term, then the offerings term, then the
// term following today's date.
func (s *advisingService) startTerm() planner.Term {
	if t, ok := planner.ParseTerm(s.opts.StartTerm); ok {
		return t
	}
	if t, ok := planner.ParseTerm(s.catalog.Term()); ok {
		return t
	}
	now := s.opts.Now()
	current := planner.Term{Season: planner.Fall, Year: now.Year()}
	switch {
	case now.Month() <= time.May:
		current.Season = planner.Spring
	case now.Month() <= time.July:
		current.Season = planner.Summer
	}
	return current.Next(false)
}

func (s *advisingService) Export(ctx context.Context, id string) (data []byte, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "export", startedAt, err, map[string]any{"student_id": id}) }()

	rec, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return interchange.Export(*rec)
}

func (s *advisingService) Import(ctx context.Context, r io.Reader, name string) (rec *domain.StudentRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import", startedAt, err, fields) }()

	rec, err = interchange.Import(r, s.opts.Logger)
	if err != nil {
		return nil, err
	}
	if name != "" {
		rec.Name = name
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("imported record has no name; pass one explicitly")
	}
	fields["completed"] = len(rec.CompletedCourses)
	fields["scheduled"] = len(rec.ScheduledCourses)

	if err := s.students.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, fmt.Errorf("importing %q: %w", rec.Name, err)
		}
		return nil, fmt.Errorf("saving imported record: %w", err)
	}
	return rec, nil
}

func (s *advisingService) Report(ctx context.Context, id string, format report.Format) (data []byte, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "report", startedAt, err, map[string]any{"student_id": id, "format": string(format)})
	}()

	rec, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.compute(*rec)
	if err != nil {
		return nil, err
	}
	plan, err := s.plan(*rec)
	if err != nil {
		return nil, err
	}
	summary := report.Summary{
		Record:      *rec,
		Progress:    p,
		Plan:        plan,
		GeneratedAt: s.opts.Now(),
	}

	switch format {
	case report.FormatCSV:
		return report.CSV(summary)
	case report.FormatPDF:
		return report.PDF(summary, s.catalog)
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}
