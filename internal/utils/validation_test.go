package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.example.org",
		"USER_99%x@example.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user name@example.com",
		"user@exam ple.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestIsValidAmount(t *testing.T) {
	ceiling := decimal.NewFromInt(1000000)

	assert.True(t, IsValidAmount(decimal.NewFromFloat(0.01), ceiling))
	assert.True(t, IsValidAmount(decimal.NewFromInt(500), ceiling))
	assert.True(t, IsValidAmount(ceiling, ceiling), "ceiling itself is allowed")

	assert.False(t, IsValidAmount(decimal.Zero, ceiling))
	assert.False(t, IsValidAmount(decimal.NewFromInt(-1), ceiling))
	assert.False(t, IsValidAmount(ceiling.Add(decimal.NewFromFloat(0.01)), ceiling))
}

func TestSanitizeString(t *testing.T) {
	cases := map[string]string{
		"plain text":               "plain text",
		`<script>alert("x")</script>`: "scriptalert(x)/script",
		`O'Brien & Sons`:           "OBrien  Sons",
		"":                         "",
		`<>&"'`:                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeString(in), "input %q", in)
	}
}
