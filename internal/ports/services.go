// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Return domain types, never infrastructure types
//   - Keep interfaces small and focused
//   - Only blocking operations take a context
package ports

import "github.com/jsamuelsen/teapot-service/internal/domain"

// QuoteStore serves quotes from a list fixed at construction time.
//
// Implementations must be safe for concurrent use and must never fail once
// constructed: the list they serve is guaranteed non-empty.
type QuoteStore interface {
	// RandomQuote returns one quote chosen uniformly at random.
	RandomQuote() domain.Quote

	// Quotes returns the full, read-only list being served.
	Quotes() domain.QuoteList
}
