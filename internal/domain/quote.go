package domain

import (
	"fmt"
	"strings"
)

// Quote is a single line of teapot wisdom, served verbatim as a response body.
type Quote string

// String returns the quote text.
func (q Quote) String() string {
	return string(q)
}

// QuoteList is an ordered, read-only sequence of quotes.
// A QuoteList obtained from NewQuoteList always holds at least one quote,
// and none of its quotes is blank. It offers no way to mutate its contents.
type QuoteList struct {
	quotes []Quote
}

// NewQuoteList validates texts and returns a QuoteList holding its own copy.
// The whole list is rejected if it is empty or any element is blank after
// trimming whitespace.
func NewQuoteList(texts []string) (QuoteList, error) {
	if len(texts) == 0 {
		return QuoteList{}, NewValidationError("quotes", "must be a non-empty array")
	}

	quotes := make([]Quote, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return QuoteList{}, NewValidationErrorWithValue(
				fmt.Sprintf("quotes[%d]", i),
				"must be a non-empty string",
				text,
			)
		}

		quotes[i] = Quote(text)
	}

	return QuoteList{quotes: quotes}, nil
}

// Len returns the number of quotes.
func (l QuoteList) Len() int {
	return len(l.quotes)
}

// At returns the quote at index i. It panics if i is out of range.
func (l QuoteList) At(i int) Quote {
	return l.quotes[i]
}

// All returns a copy of the quotes in their original order.
func (l QuoteList) All() []Quote {
	out := make([]Quote, len(l.quotes))
	copy(out, l.quotes)

	return out
}
