// Package quotes provides the file-backed quote store.
//
// The store reads a JSON document of the form {"quotes": ["...", ...]} exactly
// once, when it is constructed. Changes to the file afterwards are never seen.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/teapot-service/internal/domain"
)

// DefaultPath is the quotes file used when no path is given.
// Relative paths resolve against the process working directory.
const DefaultPath = "config/teapot_quotes.json"

// quotesKey is the only field of the document that is interpreted.
const quotesKey = "quotes"

var (
	errMissingQuotes = errors.New("quotes file must contain a non-empty 'quotes' array")
	errNotAnArray    = errors.New("'quotes' must be an array")
)

// RandSource picks an integer in [0, n). Implementations shared by
// concurrent requests must be safe for concurrent use.
type RandSource interface {
	IntN(n int) int
}

// globalRand delegates to the goroutine-safe top-level math/rand/v2 generator.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// Store serves quotes loaded from a file. It is read-only after Load returns
// and safe for unsynchronized concurrent use.
type Store struct {
	path   string
	quotes domain.QuoteList
	rng    RandSource
}

// Option configures a Store.
type Option func(*Store)

// WithRand replaces the random source. Used to make quote selection
// deterministic in tests.
func WithRand(src RandSource) Option {
	return func(s *Store) {
		if src != nil {
			s.rng = src
		}
	}
}

// Load reads, parses and validates the quotes file at path.
// Any failure is returned as a *domain.ConfigurationError naming the
// absolute path of the file.
func Load(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.NewConfigurationError(path, fmt.Errorf("resolving path: %w", err))
	}

	texts, err := readQuotes(resolved)
	if err != nil {
		return nil, domain.NewConfigurationError(resolved, err)
	}

	list, err := domain.NewQuoteList(texts)
	if err != nil {
		return nil, domain.NewConfigurationError(resolved, err)
	}

	s := &Store{
		path:   resolved,
		quotes: list,
		rng:    globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// readQuotes loads the document and extracts the raw quote strings.
// Element-level checks that need no type information are left to
// domain.NewQuoteList.
func readQuotes(path string) ([]string, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("reading quotes file: %w", err)
	}

	if !k.Exists(quotesKey) {
		return nil, errMissingQuotes
	}

	raw, ok := k.Get(quotesKey).([]any)
	if !ok {
		return nil, errNotAnArray
	}

	if len(raw) == 0 {
		return nil, errMissingQuotes
	}

	texts := make([]string, len(raw))
	for i, v := range raw {
		text, ok := v.(string)
		if !ok {
			return nil, domain.NewValidationErrorWithValue(
				fmt.Sprintf("quotes[%d]", i),
				"must be a non-empty string",
				v,
			)
		}

		texts[i] = text
	}

	return texts, nil
}

// RandomQuote returns one quote chosen independently and uniformly at random.
func (s *Store) RandomQuote() domain.Quote {
	return s.quotes.At(s.rng.IntN(s.quotes.Len()))
}

// Quotes returns the list being served.
func (s *Store) Quotes() domain.QuoteList {
	return s.quotes
}

// Path returns the absolute path the quotes were loaded from.
func (s *Store) Path() string {
	return s.path
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "quotes"
}

// Check implements ports.HealthChecker. A constructed store is always able
// to serve, so this only guards against a zero-value Store.
func (s *Store) Check(context.Context) error {
	if s.quotes.Len() == 0 {
		return errMissingQuotes
	}

	return nil
}
