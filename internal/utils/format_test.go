package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "ñañ...", Truncate("ñañañañ", 3))
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, "2010", YearOf("2010-07-16"))
	assert.Equal(t, "1999", YearOf("1999"))
	assert.Equal(t, "", YearOf(""))
	assert.Equal(t, "", YearOf("soon"))
	assert.Equal(t, "", YearOf("abcd-01-02"))
	assert.Equal(t, "", YearOf("TBA!"))
	assert.Equal(t, "", YearOf("0000-01-01"))
	assert.Equal(t, "", YearOf("+201-01-01"))
}
