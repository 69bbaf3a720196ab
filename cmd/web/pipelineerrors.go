package main

import (
	"net/http"

	"github.com/mkromann/ugc-builder/internal/briefgen"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/webpage"
)

// generationFailure maps a brief generation pipeline error to an HTTP status and a
// user-facing message. Every classified cause gets its own message so the caller
// knows whether to fix the URL, pick a richer page or just retry.
func generationFailure(err error) (int, string) {
	switch {
	case errors.Is(err, webpage.ErrInvalidURL):
		return http.StatusBadRequest, "A valid, absolute http(s) URL is required."
	case errors.Is(err, webpage.ErrFetch):
		return http.StatusBadGateway, "Failed to fetch content from the URL."
	case errors.Is(err, briefgen.ErrInsufficientContent):
		return http.StatusUnprocessableEntity, "Could not extract sufficient content from the URL to generate a brief."
	case errors.Is(err, briefgen.ErrParse):
		return http.StatusBadGateway, "Failed to parse the generated brief."
	case errors.Is(err, briefgen.ErrInvalidBrief):
		return http.StatusBadGateway, "The generated brief did not have the expected structure."
	case errors.Is(err, briefgen.ErrModel):
		return http.StatusBadGateway, "Brief generation failed. Please try again."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred during brief generation."
	}
}

// chatFailure maps a chat turn error to an HTTP status and a user-facing message.
func chatFailure(err error) (int, string) {
	switch {
	case errors.Is(err, briefgen.ErrEmptyMessage):
		return http.StatusBadRequest, "Message content is required."
	case errors.Is(err, briefgen.ErrTimeout):
		return http.StatusGatewayTimeout, "The assistant took too long to respond. Please try again."
	case errors.Is(err, briefgen.ErrRunFailed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, briefgen.ErrNoResponse):
		return http.StatusBadGateway, "No valid assistant response found."
	case errors.Is(err, briefgen.ErrModel):
		return http.StatusBadGateway, "The assistant request failed. Please try again."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred."
	}
}
