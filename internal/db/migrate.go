package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateStudentCoursesScheduledStatus(db); err != nil {
		return fmt.Errorf("migrating student_courses status constraint: %w", err)
	}
	if err := migrateNormalizeCourseCodes(db); err != nil {
		return fmt.Errorf("normalizing course codes: %w", err)
	}
	return nil
}

// migrateStudentCoursesScheduledStatus rebuilds student_courses from the early
// schema, which called scheduled courses "planned".
func migrateStudentCoursesScheduledStatus(db *sql.DB) error {
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	var createSQL string
	if err := conn.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'student_courses'`).Scan(&createSQL); err != nil {
		return fmt.Errorf("loading student_courses schema: %w", err)
	}
	if strings.Contains(strings.ToLower(createSQL), "'scheduled'") {
		return nil
	}

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS student_courses_new`); err != nil {
		return fmt.Errorf("dropping stale student_courses_new: %w", err)
	}
	if _, err := tx.ExecContext(ctx, strings.Replace(studentCoursesTable, "student_courses", "student_courses_new", 1)); err != nil {
		return fmt.Errorf("creating student_courses_new: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO student_courses_new (student_id, code, status, position)
		SELECT student_id, code,
			CASE status WHEN 'planned' THEN 'scheduled' ELSE status END,
			position
		FROM student_courses`); err != nil {
		return fmt.Errorf("copying student_courses data: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE student_courses`); err != nil {
		return fmt.Errorf("dropping old student_courses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE student_courses_new RENAME TO student_courses`); err != nil {
		return fmt.Errorf("renaming student_courses_new: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_student_courses_code ON student_courses(code)`); err != nil {
		return fmt.Errorf("recreating idx_student_courses_code: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing student_courses migration: %w", err)
	}
	committed = true

	return nil
}

// migrateNormalizeCourseCodes rewrites codes stored without the space between
// prefix and number ("MATH10043"). Idempotent: only rows that lack a space are
// touched.
func migrateNormalizeCourseCodes(db *sql.DB) error {
	ctx := context.Background()
	for _, table := range []string{"student_courses", "course_categories", "general_electives"} {
		q := fmt.Sprintf(`UPDATE OR IGNORE %s
			SET code = UPPER(SUBSTR(code, 1, LENGTH(code) - 5)) || ' ' || SUBSTR(code, -5)
			WHERE INSTR(code, ' ') = 0 AND LENGTH(code) BETWEEN 7 AND 10`, table)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("normalizing %s codes: %w", table, err)
		}
	}
	return nil
}

const studentCoursesTable = `CREATE TABLE IF NOT EXISTS student_courses (
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		code       TEXT NOT NULL,
		status     TEXT NOT NULL CHECK(status IN ('completed','scheduled')),
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, code)
	)`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		degree_type           TEXT NOT NULL DEFAULT ''
		                      CHECK(degree_type IN ('','major','minor')),
		expected_graduation   TEXT NOT NULL DEFAULT '',
		general_electives_set INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_name ON students(name COLLATE NOCASE)`,

	studentCoursesTable,

	`CREATE INDEX IF NOT EXISTS idx_student_courses_code ON student_courses(code)`,

	`CREATE TABLE IF NOT EXISTS special_credits (
		student_id  TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'other'
		            CHECK(type IN ('transfer','ap','dual_credit','waiver','other')),
		description TEXT NOT NULL DEFAULT '',
		counts_as   TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS course_categories (
		student_id  TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		code        TEXT NOT NULL,
		category_id TEXT NOT NULL
		            CHECK(category_id IN ('dcElective','daElective','generalElectives')),
		PRIMARY KEY (student_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS general_electives (
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		code       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (student_id, code)
	)`,

	// Summer planning and advisor notes
	`ALTER TABLE students ADD COLUMN include_summer INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE students ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
