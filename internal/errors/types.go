package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error     string `json:"error"`               // error code (e.g., "invalid_query", "not_found")
	Message   string `json:"message"`             // user-friendly message
	Details   string `json:"details,omitempty"`   // optional details (sanitized in production)
	Retryable bool   `json:"retryable,omitempty"` // whether the caller may retry the request
}

// Kind classifies failures of the retrieval and ingestion pipeline
type Kind string

const (
	KindInvalidQuery        Kind = "invalid_query"
	KindDimensionMismatch   Kind = "dimension_mismatch"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindProviderTimeout     Kind = "provider_timeout"
	KindDocumentNotFound    Kind = "document_not_found"
	KindDocumentNotIndexed  Kind = "document_not_indexed"
	KindOrphanedIndexEntry  Kind = "orphaned_index_entry"
)

// DomainError is an error with a pipeline failure classification attached.
// It wraps the underlying cause so errors.Is/As keep working through it.
type DomainError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
