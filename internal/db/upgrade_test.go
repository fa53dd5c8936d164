package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyV1ToCurrentSchema simulates upgrading a
// database created by the first release. Verifies that:
// 1. Data inserted under the old schema survives migration
// 2. New columns are added with correct defaults
// 3. "planned" courses become "scheduled" and the constraint is replaced
// 4. Codes stored without a space are normalized
func TestMigrate_UpgradePath_LegacyV1ToCurrentSchema(t *testing.T) {
	// Create a raw DB without using OpenDB (to manually control schema).
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
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
		`CREATE TABLE IF NOT EXISTS student_courses (
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			code       TEXT NOT NULL,
			status     TEXT NOT NULL CHECK(status IN ('completed','planned')),
			position   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (student_id, code)
		)`,
	}
	for i, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	_, err = db.Exec(`INSERT INTO students (id, name, degree_type, created_at, updated_at)
		VALUES ('s1', 'Legacy Student', 'minor', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO student_courses (student_id, code, status, position) VALUES
		('s1', 'MATH 10043', 'completed', 0),
		('s1', 'cosc10603', 'planned', 0)`)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err, "migration on legacy schema should succeed")

	var name, degree string
	var includeSummer int
	var notes string
	err = db.QueryRow(`SELECT name, degree_type, include_summer, notes FROM students WHERE id = 's1'`).
		Scan(&name, &degree, &includeSummer, &notes)
	require.NoError(t, err)
	assert.Equal(t, "Legacy Student", name)
	assert.Equal(t, "minor", degree)
	assert.Equal(t, 0, includeSummer)
	assert.Equal(t, "", notes)

	var status string
	err = db.QueryRow(`SELECT status FROM student_courses WHERE student_id = 's1' AND code = 'COSC 10603'`).Scan(&status)
	require.NoError(t, err, "legacy code should be normalized")
	assert.Equal(t, "scheduled", status)

	var createSQL string
	err = db.QueryRow(`SELECT sql FROM sqlite_master WHERE type='table' AND name='student_courses'`).Scan(&createSQL)
	require.NoError(t, err)
	assert.Contains(t, createSQL, "'scheduled'")

	_, err = db.Exec(`INSERT INTO student_courses (student_id, code, status) VALUES ('s1', 'ENGL 20813', 'planned')`)
	assert.Error(t, err, "the old status is rejected after migration")

	// Re-running on the upgraded schema is a no-op.
	require.NoError(t, Migrate(db))
}
