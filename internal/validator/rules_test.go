package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("spices"))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank("   "))
	assert.False(t, NotBlank("\t\n"))
}

func TestMinRunes(t *testing.T) {
	assert.True(t, MinRunes("abc", 3))
	assert.False(t, MinRunes("ab", 3))
	assert.True(t, MinRunes("héllo", 5))
}

func TestMaxRunes(t *testing.T) {
	assert.True(t, MaxRunes("abc", 3))
	assert.False(t, MaxRunes("abcd", 3))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("chili-peppers", SlugRgx))
	assert.True(t, Matches("a1", SlugRgx))
	assert.False(t, Matches("-chili", SlugRgx))
	assert.False(t, Matches("chili-", SlugRgx))
	assert.False(t, Matches("Chili", SlugRgx))
	assert.False(t, Matches("", SlugRgx))
}

func TestIn(t *testing.T) {
	assert.True(t, In("name", "name", "created_at", "updated_at"))
	assert.False(t, In("slug", "name", "created_at", "updated_at"))
	assert.True(t, In(2, 1, 2, 3))
}
