// Package ai adapts the OpenAI API to the collaborator interfaces the pipelines
// depend on.
package ai

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/mkromann/ugc-builder/internal/briefgen"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	completionModel = openai.GPT4oMini
	maxTokens       = 4096
)

var ErrNoImage = errors.NewSentinel("no image data received from model")

type Client struct {
	client      *openai.Client
	assistantID string
	logger      *slog.Logger
}

func NewClient(apiKey, assistantID string, logger *slog.Logger) *Client {
	return &Client{
		client:      openai.NewClient(apiKey),
		assistantID: assistantID,
		logger:      logger.With("source", "ai.Client"),
	}
}

// CompleteJSON sends a single-shot prompt with the response format constrained to a
// JSON object and returns the raw reply text.
func (c *Client) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     completionModel,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no text content received from model")
	}
	return completion.Choices[0].Message.Content, nil
}

// CreateThread starts a new conversation thread and returns its opaque handle.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.CreateThread(ctx, openai.ThreadRequest{}) //nolint:exhaustruct
	if err != nil {
		return "", errors.Wrap(err, "create thread")
	}
	return thread.ID, nil
}

// AddUserMessage appends a user message to the given thread.
func (c *Client) AddUserMessage(ctx context.Context, threadID, message string) error {
	_, err := c.client.CreateMessage(ctx, threadID, openai.MessageRequest{ //nolint:exhaustruct
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	if err != nil {
		return errors.Wrap(err, "create message", slog.String("threadID", threadID))
	}
	return nil
}

// StartRun triggers the configured assistant on the thread with per-run instructions.
func (c *Client) StartRun(ctx context.Context, threadID, instructions string) (string, error) {
	run, err := c.client.CreateRun(ctx, threadID, openai.RunRequest{ //nolint:exhaustruct
		AssistantID:  c.assistantID,
		Instructions: instructions,
	})
	if err != nil {
		return "", errors.Wrap(err, "create run", slog.String("threadID", threadID))
	}
	return run.ID, nil
}

// RunStatus retrieves the current state of a run.
func (c *Client) RunStatus(ctx context.Context, threadID, runID string) (briefgen.RunState, error) {
	run, err := c.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return briefgen.RunState{}, errors.Wrap(err, "retrieve run",
			slog.String("threadID", threadID), slog.String("runID", runID))
	}
	state := briefgen.RunState{
		Status:           string(run.Status),
		LastErrorCode:    "",
		LastErrorMessage: "",
	}
	if run.LastError != nil {
		state.LastErrorCode = string(run.LastError.Code)
		state.LastErrorMessage = run.LastError.Message
	}
	return state, nil
}

// CancelRun cancels an in-flight run so no orphaned work is left behind on timeout.
func (c *Client) CancelRun(ctx context.Context, threadID, runID string) error {
	if _, err := c.client.CancelRun(ctx, threadID, runID); err != nil {
		return errors.Wrap(err, "cancel run",
			slog.String("threadID", threadID), slog.String("runID", runID))
	}
	return nil
}

// LatestAssistantMessage fetches only the single most recent message on the thread
// and returns its text content. An empty string means the assistant produced no text.
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	limit := 1
	order := "desc"
	list, err := c.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", errors.Wrap(err, "list messages", slog.String("threadID", threadID))
	}
	for _, message := range list.Messages {
		if message.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, content := range message.Content {
			if content.Type == "text" && content.Text != nil {
				return content.Text.Value, nil
			}
		}
	}
	return "", nil
}

// GenerateImageURL generates a portrait image for the prompt and returns the
// short-lived URL the API hosts it at.
func (c *Client) GenerateImageURL(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.CreateImage(ctx, openai.ImageRequest{ //nolint:exhaustruct
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1792,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", errors.Wrap(err, "create image")
	}
	if len(response.Data) == 0 || response.Data[0].URL == "" {
		return "", ErrNoImage
	}
	return response.Data[0].URL, nil
}

// GenerateImagePNG generates a portrait image for the prompt and returns the decoded
// PNG bytes, suitable for storing in the blob store.
func (c *Client) GenerateImagePNG(ctx context.Context, prompt string) ([]byte, error) {
	response, err := c.client.CreateImage(ctx, openai.ImageRequest{ //nolint:exhaustruct
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1792,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create image")
	}
	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}
	imageBytes, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, errors.Wrap(err, "decode image data")
	}
	return imageBytes, nil
}
