package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("traveler@example.com"))
	assert.True(t, IsValidEmail("  spaced@example.ph  "))
	assert.False(t, IsValidEmail("no-at-sign.com"))
	assert.False(t, IsValidEmail("two words@example.com"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidAirportCode(t *testing.T) {
	assert.True(t, IsValidAirportCode("MNL"))
	assert.True(t, IsValidAirportCode("ceb"))
	assert.False(t, IsValidAirportCode("MN"))
	assert.False(t, IsValidAirportCode("MNLA"))
	assert.False(t, IsValidAirportCode("M1L"))
}

func TestTrimAndValidate(t *testing.T) {
	value, ok := TrimAndValidate("  Cebu getaway ")
	assert.True(t, ok)
	assert.Equal(t, "Cebu getaway", value)

	value, ok = TrimAndValidate("   ")
	assert.False(t, ok)
	assert.Empty(t, value)
}
