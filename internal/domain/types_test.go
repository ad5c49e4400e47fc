package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBloodGroup(t *testing.T) {
	for _, g := range BloodGroups {
		assert.True(t, IsValidBloodGroup(g), g)
	}
	assert.False(t, IsValidBloodGroup("C+"))
	assert.False(t, IsValidBloodGroup("o+"))
	assert.False(t, IsValidBloodGroup(""))
}

func TestNormalizeBloodGroup(t *testing.T) {
	cases := map[string]string{
		"O+":  "O+",
		"o+":  "O+",
		"O ":  "O+",
		"ab ": "AB+",
		"AB-": "AB-",
		"":    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeBloodGroup(in), "input %q", in)
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
}
