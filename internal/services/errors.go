package services

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// UpstreamError marks a failed call to an external collaborator (Gemini,
// Translate, Vision, Speech). Surfaced to the client as retryable.
type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }
