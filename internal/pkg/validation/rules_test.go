package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("arun@student.edu"))
	assert.True(t, ValidEmail("a.b+c@uni.ac.in"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Arun Kumar"))
	assert.False(t, ValidName("A"))
	assert.False(t, ValidName(""))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret123"))
	assert.False(t, ValidPassword("abc"))
}

func TestValidRegisterNumber(t *testing.T) {
	assert.True(t, ValidRegisterNumber("2021503512"))
	assert.False(t, ValidRegisterNumber(""))
}

func TestStringValidationOptionalEmpty(t *testing.T) {
	v := NewStringValidation("").WithRequired(false).WithMinLength(5)
	assert.True(t, v.Validate())
}
