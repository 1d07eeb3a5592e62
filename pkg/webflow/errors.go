package webflow

import "errors"

var (
	// ErrInvalidPayload covers empty bodies, malformed JSON and documents
	// that are not JSON objects.
	ErrInvalidPayload = errors.New("webflow: invalid payload")

	// ErrMissingFormName is returned when neither "name" nor "formName" carries a value.
	ErrMissingFormName = errors.New("webflow: form name missing")

	// ErrInvalidSignature is returned when signature headers are missing,
	// stale or do not match the body.
	ErrInvalidSignature = errors.New("webflow: invalid signature")
)
