package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  Blockchain  ", "FinTech  ", "  Innovation"},
			expected: []string{"Blockchain", "FinTech", "Innovation"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"foo", "bar", "foo", "baz", "bar"},
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"foo", "", "  ", "bar"},
			expected: []string{"foo", "bar"},
		},
		{
			name:     "preserves case",
			input:    []string{"Foo", "foo", "FOO"},
			expected: []string{"Foo", "foo", "FOO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

type record struct {
	ID   string
	Name string
}

func TestDedupeByKey(t *testing.T) {
	t.Run("keeps first occurrence in order", func(t *testing.T) {
		input := []record{
			{ID: "sp-1", Name: "first"},
			{ID: "sp-2", Name: "second"},
			{ID: "sp-1", Name: "duplicate"},
			{ID: "sp-3", Name: "third"},
		}
		result := DedupeByKey(input, func(r record) string { return r.ID })
		assert.Equal(t, []record{
			{ID: "sp-1", Name: "first"},
			{ID: "sp-2", Name: "second"},
			{ID: "sp-3", Name: "third"},
		}, result)
	})

	t.Run("drops empty keys", func(t *testing.T) {
		input := []record{{ID: "", Name: "anonymous"}, {ID: "sp-1", Name: "kept"}}
		result := DedupeByKey(input, func(r record) string { return r.ID })
		assert.Equal(t, []record{{ID: "sp-1", Name: "kept"}}, result)
	})

	t.Run("nil slice", func(t *testing.T) {
		assert.Nil(t, DedupeByKey(nil, func(r record) string { return r.ID }))
	})
}
