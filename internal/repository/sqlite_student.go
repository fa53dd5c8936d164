package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/advisor/internal/db"
	"github.com/alexanderramin/advisor/internal/domain"
)

const (
	statusCompleted = "completed"
	statusScheduled = "scheduled"
)

// SQLiteStudentRepo implements StudentRepo using a SQLite database.
type SQLiteStudentRepo struct {
	db db.DBTX
}

// NewSQLiteStudentRepo creates a new SQLiteStudentRepo.
func NewSQLiteStudentRepo(conn db.DBTX) *SQLiteStudentRepo {
	return &SQLiteStudentRepo{db: conn}
}

const studentColumns = `id, name, degree_type, expected_graduation, include_summer,
	general_electives_set, notes, created_at, updated_at`

func (r *SQLiteStudentRepo) Create(ctx context.Context, s *domain.StudentRecord) error {
	query := `INSERT INTO students (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.DegreeType),
		s.ExpectedGraduation,
		boolToInt(s.IncludeSummer),
		boolToInt(s.GeneralElectivesSet),
		s.Notes,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student %q: %w", s.Name, ErrDuplicateName)
		}
		return fmt.Errorf("inserting student: %w", err)
	}
	return r.writeChildren(ctx, s)
}

func (r *SQLiteStudentRepo) GetByID(ctx context.Context, id string) (*domain.StudentRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	return r.load(ctx, row)
}

// GetByName looks a student up by name, ignoring case.
func (r *SQLiteStudentRepo) GetByName(ctx context.Context, name string) (*domain.StudentRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE name = ? COLLATE NOCASE`, name)
	return r.load(ctx, row)
}

func (r *SQLiteStudentRepo) List(ctx context.Context) ([]*domain.StudentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}

	var students []*domain.StudentRecord
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	rows.Close()

	// Child rows are read after the student cursor is closed; the in-memory
	// database runs on a single connection.
	for _, s := range students {
		if err := r.readChildren(ctx, s); err != nil {
			return nil, err
		}
	}
	return students, nil
}

func (r *SQLiteStudentRepo) Update(ctx context.Context, s *domain.StudentRecord) error {
	query := `UPDATE students SET name = ?, degree_type = ?, expected_graduation = ?,
		include_summer = ?, general_electives_set = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		string(s.DegreeType),
		s.ExpectedGraduation,
		boolToInt(s.IncludeSummer),
		boolToInt(s.GeneralElectivesSet),
		s.Notes,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student %q: %w", s.Name, ErrDuplicateName)
		}
		return fmt.Errorf("updating student: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("student %s: %w", s.ID, ErrNotFound)
	}

	for _, table := range []string{"student_courses", "special_credits", "course_categories", "general_electives"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE student_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return r.writeChildren(ctx, s)
}

func (r *SQLiteStudentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStudentRepo) writeChildren(ctx context.Context, s *domain.StudentRecord) error {
	courseQuery := `INSERT INTO student_courses (student_id, code, status, position) VALUES (?, ?, ?, ?)`
	for i, code := range s.CompletedCourses {
		if _, err := r.db.ExecContext(ctx, courseQuery, s.ID, code, statusCompleted, i); err != nil {
			return fmt.Errorf("inserting completed course %s: %w", code, err)
		}
	}
	for i, code := range s.ScheduledCourses {
		if _, err := r.db.ExecContext(ctx, courseQuery, s.ID, code, statusScheduled, i); err != nil {
			return fmt.Errorf("inserting scheduled course %s: %w", code, err)
		}
	}

	for i, c := range s.SpecialCredits {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO special_credits (student_id, id, type, description, counts_as, position) VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, c.ID, string(c.Type), c.Description, c.CountsAs, i,
		); err != nil {
			return fmt.Errorf("inserting special credit %s: %w", c.ID, err)
		}
	}

	for code, category := range s.CourseCategories {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO course_categories (student_id, code, category_id) VALUES (?, ?, ?)`,
			s.ID, code, category,
		); err != nil {
			return fmt.Errorf("inserting category for %s: %w", code, err)
		}
	}

	for i, code := range s.GeneralElectives {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO general_electives (student_id, code, position) VALUES (?, ?, ?)`,
			s.ID, code, i,
		); err != nil {
			return fmt.Errorf("inserting general elective %s: %w", code, err)
		}
	}
	return nil
}

func (r *SQLiteStudentRepo) load(ctx context.Context, row *sql.Row) (*domain.StudentRecord, error) {
	s, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.readChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStudentRepo) readChildren(ctx context.Context, s *domain.StudentRecord) error {
	err := r.eachRow(ctx, "student courses",
		`SELECT code, status FROM student_courses WHERE student_id = ? ORDER BY status, position`, s.ID,
		func(rows *sql.Rows) error {
			var code, status string
			if err := rows.Scan(&code, &status); err != nil {
				return err
			}
			if status == statusCompleted {
				s.CompletedCourses = append(s.CompletedCourses, code)
			} else {
				s.ScheduledCourses = append(s.ScheduledCourses, code)
			}
			return nil
		})
	if err != nil {
		return err
	}

	err = r.eachRow(ctx, "special credits",
		`SELECT id, type, description, counts_as FROM special_credits WHERE student_id = ? ORDER BY position`, s.ID,
		func(rows *sql.Rows) error {
			var c domain.SpecialCredit
			var typ string
			if err := rows.Scan(&c.ID, &typ, &c.Description, &c.CountsAs); err != nil {
				return err
			}
			c.Type = domain.CreditType(typ)
			s.SpecialCredits = append(s.SpecialCredits, c)
			return nil
		})
	if err != nil {
		return err
	}

	err = r.eachRow(ctx, "course categories",
		`SELECT code, category_id FROM course_categories WHERE student_id = ?`, s.ID,
		func(rows *sql.Rows) error {
			var code, category string
			if err := rows.Scan(&code, &category); err != nil {
				return err
			}
			if s.CourseCategories == nil {
				s.CourseCategories = make(map[string]string)
			}
			s.CourseCategories[code] = category
			return nil
		})
	if err != nil {
		return err
	}

	var electives []string
	err = r.eachRow(ctx, "general electives",
		`SELECT code FROM general_electives WHERE student_id = ? ORDER BY position`, s.ID,
		func(rows *sql.Rows) error {
			var code string
			if err := rows.Scan(&code); err != nil {
				return err
			}
			electives = append(electives, code)
			return nil
		})
	if err != nil {
		return err
	}
	if s.GeneralElectivesSet {
		if electives == nil {
			electives = []string{}
		}
		s.GeneralElectives = electives
	}
	return nil
}

func (r *SQLiteStudentRepo) eachRow(ctx context.Context, what, query string, id string, fn func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("loading %s: %w", what, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("scanning %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", what, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (*domain.StudentRecord, error) {
	var s domain.StudentRecord
	var degree, createdAt, updatedAt string
	var includeSummer, geSet int

	err := row.Scan(
		&s.ID, &s.Name, &degree, &s.ExpectedGraduation,
		&includeSummer, &geSet, &s.Notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning student: %w", err)
	}

	s.DegreeType = domain.DegreeType(degree)
	s.IncludeSummer = intToBool(includeSummer)
	s.GeneralElectivesSet = intToBool(geSet)

	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
