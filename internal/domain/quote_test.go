package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteList(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		wantField string
	}{
		{name: "single quote", input: []string{"I'm a little teapot"}},
		{name: "several quotes", input: []string{"a", "b", "c"}},
		{name: "surrounding whitespace is kept", input: []string{"  short and stout  "}},
		{name: "nil slice", input: nil, wantField: "quotes"},
		{name: "empty slice", input: []string{}, wantField: "quotes"},
		{name: "empty element", input: []string{"a", ""}, wantField: "quotes[1]"},
		{name: "whitespace only element", input: []string{" \t\n", "b"}, wantField: "quotes[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := NewQuoteList(tt.input)

			if tt.wantField != "" {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				assert.Zero(t, list.Len())
				return
			}

			require.NoError(t, err)
			require.Equal(t, len(tt.input), list.Len())
			for i, text := range tt.input {
				assert.Equal(t, Quote(text), list.At(i))
			}
		})
	}
}

func TestQuoteList_OwnsItsData(t *testing.T) {
	input := []string{"tip me over", "pour me out"}

	list, err := NewQuoteList(input)
	require.NoError(t, err)

	input[0] = "mutated"
	assert.Equal(t, Quote("tip me over"), list.At(0))

	all := list.All()
	all[1] = "mutated"
	assert.Equal(t, Quote("pour me out"), list.At(1))
}

func TestQuote_String(t *testing.T) {
	assert.Equal(t, "short and stout", Quote("short and stout").String())
}
