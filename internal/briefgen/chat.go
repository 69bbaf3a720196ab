package briefgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
)

// RunState is the observable state of an assistant run on the collaborator's side.
type RunState struct {
	Status           string
	LastErrorCode    string
	LastErrorMessage string
}

// Terminal reports whether the run has stopped making progress.
func (s RunState) Terminal() bool {
	return s.Status != "queued" && s.Status != "in_progress"
}

// Completed reports whether the run finished successfully.
func (s RunState) Completed() bool {
	return s.Status == "completed"
}

// ThreadClient is the conversational LLM collaborator. Thread and run identifiers are
// opaque handles owned by the collaborator; this package never parses or constructs
// them.
type ThreadClient interface {
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, message string) error
	StartRun(ctx context.Context, threadID, instructions string) (string, error)
	RunStatus(ctx context.Context, threadID, runID string) (RunState, error)
	CancelRun(ctx context.Context, threadID, runID string) error
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}

const runInstructions = `Please generate or update the brief based on the user's request. Format the output as a JSON object following this structure:
{
  "title": "Generated Brief Title String",
  "summaryOfChanges": "A brief summary describing the changes made in this response.",
  "scenes": [
    {
      "sceneNumber": 1,
      "script": "Generated script for scene 1...",
      "tone": "Suggested tone (e.g., 'Informativ', null)",
      "durationSeconds": 10,
      "visualDescription": "Description of visuals for scene 1... (optional, null)"
    }
  ]
}
Ensure the output is ONLY the JSON object, without any surrounding text or markdown formatting. The 'summaryOfChanges' field is mandatory and should concisely explain what was updated.`

// TurnResult is the outcome of one chat turn. Delta is nil when the assistant just
// conversed without producing a structured brief update. Scenes is Delta's scene list
// normalized into the canonical shape right after parsing, so persistence never sees
// the assistant's wire format.
type TurnResult struct {
	DisplayText string
	ThreadID    string
	Delta       *models.BriefDelta
	Scenes      []models.Scene
}

// ChatService runs the conversational brief editing loop. The conversation state
// lives entirely in the collaborator-held thread; callers pass the thread handle back
// in on every turn and reset to an empty handle to start over.
type ChatService struct {
	threads      ThreadClient
	logger       *slog.Logger
	pollInterval time.Duration
	runTimeout   time.Duration
}

func NewChatService(threads ThreadClient, runTimeout time.Duration, logger *slog.Logger) *ChatService {
	if runTimeout <= 0 {
		runTimeout = 60 * time.Second
	}
	return &ChatService{
		threads:      threads,
		logger:       logger.With("source", "ChatService"),
		pollInterval: time.Second,
		runTimeout:   runTimeout,
	}
}

// Turn appends the user message to the conversation and waits for the assistant's
// reply. An empty threadID starts a new conversation; the returned TurnResult always
// carries the handle to pass into the next turn.
//
// Failures are classified: ErrEmptyMessage, ErrTimeout, ErrRunFailed, ErrNoResponse
// and ErrModel for transport problems.
func (s *ChatService) Turn(ctx context.Context, message, threadID string) (*TurnResult, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	var err error
	if threadID == "" {
		if threadID, err = s.threads.CreateThread(ctx); err != nil {
			return nil, errors.Wrap(errors.Join(ErrModel, err), "create thread")
		}
		s.logger.LogAttrs(ctx, slog.LevelDebug, "created new thread", slog.String("threadID", threadID))
	}

	if err = s.threads.AddUserMessage(ctx, threadID, message); err != nil {
		return nil, errors.Wrap(errors.Join(ErrModel, err), "add user message", slog.String("threadID", threadID))
	}

	runID, err := s.threads.StartRun(ctx, threadID, runInstructions)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrModel, err), "start run", slog.String("threadID", threadID))
	}

	state, err := s.pollRun(ctx, threadID, runID)
	if err != nil {
		return nil, err
	}

	if !state.Completed() {
		// Surface the collaborator's own error verbatim when it gave one.
		if state.LastErrorCode != "" || state.LastErrorMessage != "" {
			return nil, errors.Wrap(ErrRunFailed,
				fmt.Sprintf("%s: %s", state.LastErrorCode, state.LastErrorMessage))
		}
		return nil, errors.Wrap(ErrRunFailed,
			fmt.Sprintf("assistant run failed with status: %s", state.Status))
	}

	reply, err := s.threads.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrModel, err), "fetch assistant message", slog.String("threadID", threadID))
	}
	if reply == "" {
		return nil, ErrNoResponse
	}

	result := TurnResult{
		DisplayText: reply,
		ThreadID:    threadID,
		Delta:       nil,
		Scenes:      nil,
	}
	delta, err := ParseBriefDelta(reply)
	if err != nil {
		// The assistant sometimes just converses. Show the raw reply and move on.
		if errors.Is(err, ErrParse) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "assistant reply contained unparseable JSON",
				slog.String("threadID", threadID))
		}
		return &result, nil
	}

	result.DisplayText = delta.SummaryOfChanges
	result.Delta = delta
	result.Scenes = delta.Normalize()
	return &result, nil
}

// pollRun rechecks the run status on a fixed interval until it reaches a terminal
// state or the deadline passes. The deadline is computed once at loop start. On
// timeout the remote run is cancelled so no orphaned work is left on the
// collaborator's side.
func (s *ChatService) pollRun(ctx context.Context, threadID, runID string) (RunState, error) {
	deadline := time.Now().Add(s.runTimeout)
	for {
		state, err := s.threads.RunStatus(ctx, threadID, runID)
		if err != nil {
			return RunState{}, errors.Wrap(errors.Join(ErrModel, err), "retrieve run status",
				slog.String("threadID", threadID), slog.String("runID", runID))
		}
		if state.Terminal() {
			return state, nil
		}
		if time.Now().After(deadline) {
			if cancelErr := s.threads.CancelRun(ctx, threadID, runID); cancelErr != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "cancel timed out run", errors.SlogError(cancelErr))
			}
			return RunState{}, errors.Wrap(ErrTimeout, "run exceeded wall-clock budget",
				slog.Duration("timeout", s.runTimeout))
		}
		time.Sleep(s.pollInterval)
	}
}
