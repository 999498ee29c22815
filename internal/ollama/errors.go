package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Sentinel errors for backend failures. Transport errors returned by the
// client wrap exactly one of these so callers can pick a diagnostic.
var (
	ErrUnreachable       = errors.New("ollama unreachable")
	ErrTimeout           = errors.New("ollama request timed out")
	ErrMalformedResponse = errors.New("malformed ollama response")
)

// StatusError reports a non-200 response from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.StatusCode, e.Body)
}

// classifyTransport maps an http.Client.Do failure onto the sentinel errors.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	return fmt.Errorf("execute request: %w", err)
}
