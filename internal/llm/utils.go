package llm

import (
	"context"
	stderrors "errors"
	"net"

	"codeberg.org/docchat/server/internal/errors"
)

// classifies a transport-level provider failure so callers can tell a
// retryable timeout apart from the provider being down or misconfigured
func classifyProviderErr(op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.KindProviderTimeout, op+" timed out", err)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.KindProviderTimeout, op+" timed out", err)
	}

	return errors.Wrap(errors.KindProviderUnavailable, op+" failed", err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
