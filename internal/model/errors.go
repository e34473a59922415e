package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrExtractionAmbiguous marks a value that could not be pinned down; a default was used.
	ErrExtractionAmbiguous = errors.New("extraction ambiguous")
	// ErrCollaboratorUnavailable is returned by weather/news/LLM clients that are down or unconfigured.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	// ErrHandlerInputMissing means a handler had nothing to act on and asked the user to clarify.
	ErrHandlerInputMissing = errors.New("handler input missing")
	// ErrInternalFault wraps panics and unexpected failures caught by the coordinator.
	ErrInternalFault = errors.New("internal fault")
)
