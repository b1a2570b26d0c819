package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValidation(t *testing.T) {
	assert.True(t, MinLength("  abc ", 3))
	assert.False(t, MinLength("  ab ", 3))
	assert.True(t, MinLength("çğü", 3), "length counts characters, not bytes")

	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(5).Validate())
	assert.False(t, NewStringValidation(strings.Repeat("x", 101)).WithMaxLength(NameMaxLength).Validate())
}

func TestPatterns(t *testing.T) {
	assert.True(t, IsEmail("Student.One@uni.edu"))
	assert.False(t, IsEmail("student@uni"))
	assert.False(t, IsEmail("not an email"))

	assert.True(t, IsPhone("0123456789"))
	assert.False(t, IsPhone("012345678"))
	assert.False(t, IsPhone("01234567890"))
	assert.False(t, IsPhone("01234abcde"))
}

func TestIsMarks(t *testing.T) {
	assert.True(t, IsMarks(0))
	assert.True(t, IsMarks(100))
	assert.False(t, IsMarks(-1))
	assert.False(t, IsMarks(101))
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Go ", "", "go", "SQL", "React ", "sql"})
	assert.Equal(t, []string{"Go", "SQL", "React"}, got)
	assert.Empty(t, NormalizeSkills(nil))
}
