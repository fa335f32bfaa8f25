package errors

import (
	stderrors "errors"
)

// creates a classified error without an underlying cause
func New(kind Kind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// wraps an underlying cause with a classification
func Wrap(kind Kind, message string, err error) *DomainError {
	return &DomainError{Kind: kind, Message: message, Err: err}
}

// returns the classification of err, or "" if it carries none
func KindOf(err error) Kind {
	var de *DomainError

	if stderrors.As(err, &de) {
		return de.Kind
	}

	return ""
}

// reports whether err is one of the given kinds
func IsKind(err error, kinds ...Kind) bool {
	k := KindOf(err)

	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}

	return false
}

// reports whether the failure is transient and worth retrying.
// only provider-level failures are retryable; everything else indicates
// bad input or a configuration problem and must be surfaced as-is.
func Retryable(err error) bool {
	return IsKind(err, KindProviderTimeout, KindProviderUnavailable)
}
