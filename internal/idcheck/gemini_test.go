package idcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"id_number":"87654321"}`, `{"id_number":"87654321"}`},
		{"fenced json", "```json\n{\"id_number\":\"87654321\"}\n```", `{"id_number":"87654321"}`},
		{"fence no language", "```\n{\"id_number\":null}\n```", `{"id_number":null}`},
		{"surrounding whitespace", "  {\"id_number\":\"1\"}  ", `{"id_number":"1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFences(tc.in))
		})
	}
}

func TestExtractFirstJSON(t *testing.T) {
	got, ok := extractFirstJSON(`Sure, here you go: {"id_number":"87654321"} hope that helps`)
	assert.True(t, ok)
	assert.Equal(t, `{"id_number":"87654321"}`, got)

	got, ok = extractFirstJSON(`[1,2,3] trailing`)
	assert.True(t, ok)
	assert.Equal(t, `[1,2,3]`, got)

	_, ok = extractFirstJSON(`no json here`)
	assert.False(t, ok)
}

func TestIDDigitsPattern(t *testing.T) {
	raw := "REPUBLIC OF KENYA\nNATIONAL ID\nID NO: 87654321\nDOB 01.01.1990\nSERIAL 123456789012"
	got := idDigitsRe.FindAllString(raw, -1)
	assert.Contains(t, got, "87654321")
	// Twelve-digit serials must not match the 8-9 digit ID pattern.
	assert.NotContains(t, got, "123456789012")
}
