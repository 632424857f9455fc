// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/teapot-service/internal/domain"
	"github.com/jsamuelsen/teapot-service/internal/ports"
)

// QuoteService orchestrates quote-related use cases.
// It depends on the QuoteStore port, not on the file-backed adapter.
type QuoteService struct {
	store  ports.QuoteStore
	logger *slog.Logger
	served prometheus.Counter
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger

	// Registerer receives the service's metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer
}

// NewQuoteService creates a new quote service with the provided dependencies.
// It panics if no store is configured, since the service cannot run without one.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: QuoteServiceConfig.Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	served := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "teapot",
		Name:      "quotes_served_total",
		Help:      "Number of teapot quotes served.",
	})
	if cfg.Registerer != nil {
		cfg.Registerer.MustRegister(served)
	}

	return &QuoteService{
		store:  cfg.Store,
		logger: logger,
		served: served,
	}
}

// RandomQuote returns a uniformly random quote. It never fails: the store
// guarantees a non-empty list.
func (s *QuoteService) RandomQuote(ctx context.Context) domain.Quote {
	quote := s.store.RandomQuote()
	s.served.Inc()

	s.logger.DebugContext(ctx, "serving teapot quote",
		slog.Int("quote_length", len(quote)),
	)

	return quote
}

// QuoteCount returns how many quotes are available.
func (s *QuoteService) QuoteCount() int {
	return s.store.Quotes().Len()
}
