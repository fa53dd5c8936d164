package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCourseCode_Valid(t *testing.T) {
	cases := map[string]string{
		"MATH 10043":    "MATH 10043",
		"math10043":     "MATH 10043",
		"  engl  20813": "ENGL 20813",
		"CS 12345":      "CS 12345",
	}
	for in, want := range cases {
		got, err := NormalizeCourseCode(in)
		require.NoError(t, err, "should accept %q", in)
		assert.Equal(t, want, got)
	}
}

func TestNormalizeCourseCode_Invalid(t *testing.T) {
	for _, in := range []string{"", "MATH", "MATH 1004", "M 10043", "10043 MATH"} {
		_, err := NormalizeCourseCode(in)
		assert.Error(t, err, "should reject %q", in)
	}
}

func TestCoursePrefix(t *testing.T) {
	assert.Equal(t, "COSC", CoursePrefix("COSC 10603"))
	assert.Equal(t, "NOSPACE", CoursePrefix("NOSPACE"))
}

func TestParseDegreeType(t *testing.T) {
	d, err := ParseDegreeType(" Major ")
	require.NoError(t, err)
	assert.Equal(t, DegreeMajor, d)

	d, err = ParseDegreeType("")
	require.NoError(t, err)
	assert.False(t, d.Decided())

	_, err = ParseDegreeType("certificate")
	assert.Error(t, err)
}
