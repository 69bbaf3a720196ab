package briefgen

import "github.com/mkromann/ugc-builder/internal/errors"

// Pipeline failures are classified so that handlers can render a specific message for
// each cause instead of a generic one. Detect them with errors.Is.
var (
	// ErrInsufficientContent means the page yielded too little text to brief on,
	// either measured locally or reported by the model through its escape hatch.
	ErrInsufficientContent = errors.NewSentinel("insufficient content to generate a brief")
	// ErrModel means the completion call itself failed.
	ErrModel = errors.NewSentinel("model request failed")
	// ErrParse means no parseable JSON object came back.
	ErrParse = errors.NewSentinel("could not parse JSON from model reply")
	// ErrNoJSONObject means the reply contained no JSON object at all. For the chat
	// loop this is a valid conversational outcome, not a failure.
	ErrNoJSONObject = errors.NewSentinel("no JSON object in model reply")
	// ErrInvalidBrief means JSON was recovered but its shape fails brief validation.
	ErrInvalidBrief = errors.NewSentinel("generated brief structure is invalid")

	// ErrEmptyMessage rejects chat turns without user input.
	ErrEmptyMessage = errors.NewSentinel("message content is required")
	// ErrTimeout means the assistant run exceeded the wall-clock budget and was cancelled.
	ErrTimeout = errors.NewSentinel("assistant run timed out")
	// ErrRunFailed means the run reached a non-successful terminal state.
	ErrRunFailed = errors.NewSentinel("assistant run failed")
	// ErrNoResponse means the run completed but produced no assistant text.
	ErrNoResponse = errors.NewSentinel("no valid assistant response found")
)
