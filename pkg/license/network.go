package license

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/readium/kotlin-toolkit-sub011/pkg/config"
)

// Method is an HTTP method accepted by the network service.
type Method string

const (
	MethodGet Method = http.MethodGet
	MethodPut Method = http.MethodPut
)

var ErrNetworkFailed = errors.New("network request failed")

// StatusError reports a response with a non-2xx status code. Operations
// translate it into the domain taxonomy; it never reaches callers raw.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// Network issues the state-changing and fetch requests of the license
// protocol. Implementations carry no automatic retry: a transient failure
// surfaces immediately and the caller decides.
type Network interface {
	Fetch(ctx context.Context, url string, method Method, headers map[string]string) ([]byte, error)
}

// NetworkConfig configures the default HTTP network service.
type NetworkConfig struct {
	Timeout   time.Duration `env:"LCP_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"LCP_HTTP_USER_AGENT" envDefault:"readium-lcp-go"`
}

// HTTPNetwork is the default Network over net/http.
type HTTPNetwork struct {
	client    *http.Client
	userAgent string
}

// NewHTTPNetwork creates a network service from the given config.
func NewHTTPNetwork(cfg NetworkConfig) *HTTPNetwork {
	return &HTTPNetwork{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// NewHTTPNetworkFromEnv creates a network service configured from LCP_HTTP_*
// environment variables.
func NewHTTPNetworkFromEnv() (*HTTPNetwork, error) {
	var cfg NetworkConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewHTTPNetwork(cfg), nil
}

func (n *HTTPNetwork) Fetch(ctx context.Context, url string, method Method, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, string(method), url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailed, err)
	}
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Cancellation passes through unwrapped.
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailed, err)
	}
	return body, nil
}
