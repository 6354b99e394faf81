package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"ada@example.com",
		"ada.obi+wallet@sub.example.co",
		"ADA_99@example.ng",
	}
	for _, s := range valid {
		assert.True(t, IsEmail(s), s)
	}

	invalid := []string{
		"",
		"ada",
		"ada@",
		"@example.com",
		"ada@example",
		"ada example@example.com",
	}
	for _, s := range invalid {
		assert.False(t, IsEmail(s), s)
	}
}

func TestIsPin(t *testing.T) {
	assert.True(t, IsPin("0000"))
	assert.True(t, IsPin("1234"))

	assert.False(t, IsPin(""))
	assert.False(t, IsPin("123"))
	assert.False(t, IsPin("12345"))
	assert.False(t, IsPin("12a4"))
	assert.False(t, IsPin("12 4"))
}

func TestHasSpecialChar(t *testing.T) {
	assert.True(t, HasSpecialChar("pass!word"))
	assert.True(t, HasSpecialChar("p@ssword"))
	assert.False(t, HasSpecialChar("password1"))
	assert.False(t, HasSpecialChar(""))
}
