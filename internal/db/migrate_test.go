package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run is a no-op.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"students", "student_courses", "special_credits", "course_categories", "general_electives"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_students_name", "idx_student_courses_code"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_Constraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO students (id, name, degree_type, created_at, updated_at)
		VALUES ('s1', 'Ada', 'doctorate', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "degree_type is constrained")

	_, err = db.Exec(`INSERT INTO students (id, name, created_at, updated_at)
		VALUES ('s1', 'Ada', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO students (id, name, created_at, updated_at)
		VALUES ('s2', 'ADA', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "names are unique regardless of case")

	_, err = db.Exec(`INSERT INTO course_categories (student_id, code, category_id) VALUES ('s1', 'ENGL 30833', 'capstone')`)
	assert.Error(t, err, "only flexible assignments are stored")

	_, err = db.Exec(`INSERT INTO student_courses (student_id, code, status) VALUES ('missing', 'MATH 10043', 'completed')`)
	assert.Error(t, err, "foreign keys are enforced")
}

func TestMigrate_CascadeDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO students (id, name, created_at, updated_at)
		VALUES ('s1', 'Ada', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO student_courses (student_id, code, status) VALUES ('s1', 'MATH 10043', 'completed')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO general_electives (student_id, code) VALUES ('s1', 'WRIT 20333')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM students WHERE id = 's1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM student_courses`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM general_electives`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenDB_AppliesPragmas(t *testing.T) {
	conn := openTestDB(t)

	var fk, busy int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.NoError(t, conn.QueryRow("PRAGMA busy_timeout").Scan(&busy))
	assert.Equal(t, 1, fk)
	assert.Equal(t, 5000, busy)
}
