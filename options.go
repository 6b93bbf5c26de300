package walletpay

import (
	"net/http"

	"github.com/rs/zerolog"
)

// defaultClientAPIEndpoint is the hosted tokenization Client API used by
// [CreditCardCheck] when no override is configured.
const defaultClientAPIEndpoint = "https://secure.pay1.de/client-api/"

type config struct {
	httpClient        *http.Client
	logger            zerolog.Logger
	clientAPIEndpoint string
}

func newConfig(opts ...Option) config {
	cfg := config{
		// No transport timeout: network deadlines belong to the caller,
		// via context cancellation.
		httpClient:        &http.Client{},
		logger:            zerolog.Nop(),
		clientAPIEndpoint: defaultClientAPIEndpoint,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Option customizes session, gateway, and tokenizer behavior.
type Option func(*config)

// WithHTTPClient replaces the HTTP client used for merchant and Client API
// round-trips.
func WithHTTPClient(client *http.Client) Option {
	if client == nil {
		panic("walletpay: http client must not be nil")
	}
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

// WithLogger enables structured logging. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithClientAPIEndpoint overrides the hosted tokenization endpoint, e.g. to
// point a [CreditCardCheck] at the preproduction environment.
func WithClientAPIEndpoint(endpoint string) Option {
	if endpoint == "" {
		panic("walletpay: client API endpoint must not be empty")
	}
	return func(cfg *config) {
		cfg.clientAPIEndpoint = endpoint
	}
}
