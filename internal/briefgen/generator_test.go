package briefgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/testhelpers"
	"github.com/mkromann/ugc-builder/internal/webpage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionMock counts calls so tests can assert that the pipeline aborts before
// ever talking to the model.
type completionMock struct {
	calls      int
	lastPrompt string
	reply      string
	err        error
}

func (m *completionMock) CompleteJSON(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.reply, m.err
}

func pageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func productPage() string {
	content := strings.Repeat("Organic oats straight from the field, ready in two minutes. ", 20)
	return fmt.Sprintf("<html><body><article>%s</article></body></html>", content)
}

func validModelReply(t *testing.T) string {
	t.Helper()
	scenes := make([]models.Scene, models.GeneratedSceneCount)
	for i := range scenes {
		scenes[i] = models.Scene{
			SceneNumber: i + 1,
			SceneTitle:  fmt.Sprintf("Scene %d", i+1),
			Script:      fmt.Sprintf("Script for scene %d", i+1),
			Tone:        []string{"Informativ"},
			TimeSeconds: 6,
			Visual: models.Visual{
				Description: "Talent with product",
				ImageURL:    fmt.Sprintf("https://via.placeholder.com/600x400?text=Scene+%d+Visual", i+1),
			},
		}
	}
	reply, err := json.Marshal(map[string]any{
		"title":    "To minutter til bedre morgenmad",
		"language": "da",
		"scenes":   scenes,
	})
	require.NoError(t, err)
	return string(reply)
}

func newTestGenerator(t *testing.T, ai CompletionClient) *Generator {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)
	return NewGenerator(webpage.NewFetcher(logger), ai, logger)
}

func TestGenerate(t *testing.T) {
	srv := pageServer(t, http.StatusOK, productPage())
	ai := &completionMock{reply: validModelReply(t)}
	generator := newTestGenerator(t, ai)

	brief, err := generator.Generate(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, ai.calls)
	assert.Contains(t, ai.lastPrompt, "Organic oats")
	assert.Contains(t, ai.lastPrompt, "Relaterende")
	assert.Equal(t, "To minutter til bedre morgenmad", brief.Title)
	assert.Equal(t, "da", brief.Language)
	assert.Equal(t, srv.URL, brief.SourceURL)
	require.Len(t, brief.Scenes, models.GeneratedSceneCount)
	for i, scene := range brief.Scenes {
		assert.Equal(t, i+1, scene.SceneNumber)
	}
}

func TestGenerate_invalidURLBeforeAnyNetworkCall(t *testing.T) {
	ai := &completionMock{}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), "::not-a-url::")
	require.ErrorIs(t, err, webpage.ErrInvalidURL)
	assert.Zero(t, ai.calls)
}

func TestGenerate_404IsFetchErrorAndSkipsModel(t *testing.T) {
	srv := pageServer(t, http.StatusNotFound, "gone")
	ai := &completionMock{}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, webpage.ErrFetch)
	assert.Zero(t, ai.calls)
}

func TestGenerate_cookieBannerPageIsInsufficientContent(t *testing.T) {
	srv := pageServer(t, http.StatusOK, "<html><body><p>Accept cookies?</p></body></html>")
	ai := &completionMock{}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrInsufficientContent)
	assert.Zero(t, ai.calls)
}

func TestGenerate_modelEscapeHatchSurfacesItsMessage(t *testing.T) {
	srv := pageServer(t, http.StatusOK, productPage())
	ai := &completionMock{reply: `{"error": "Insufficient content provided to generate brief."}`}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrInsufficientContent)
	assert.Contains(t, err.Error(), "Insufficient content provided to generate brief.")
}

func TestGenerate_modelTransportFailure(t *testing.T) {
	srv := pageServer(t, http.StatusOK, productPage())
	transportErr := fmt.Errorf("connection reset")
	ai := &completionMock{err: transportErr}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrModel)
	// The collaborator's own failure stays in the chain for the logs.
	require.ErrorIs(t, err, transportErr)
}

func TestGenerate_brokenJSONIsParseError(t *testing.T) {
	srv := pageServer(t, http.StatusOK, productPage())
	ai := &completionMock{reply: `{"title": "oops`}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrParse)
	// The decoder's detail about where the JSON broke is preserved.
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}

func TestGenerate_wrongSceneCountIsStructuralFailure(t *testing.T) {
	srv := pageServer(t, http.StatusOK, productPage())
	ai := &completionMock{reply: `{"title": "t", "language": "en", "scenes": [{"sceneNumber": 1, "script": "only one"}]}`}
	generator := newTestGenerator(t, ai)

	_, err := generator.Generate(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrInvalidBrief)
}

func TestGenerate_outOfOrderScenesAreResequenced(t *testing.T) {
	scenes := make([]models.Scene, 0, models.GeneratedSceneCount)
	for i := models.GeneratedSceneCount; i >= 1; i-- {
		scenes = append(scenes, models.Scene{
			SceneNumber: i,
			Script:      fmt.Sprintf("script %d", i),
			Tone:        []string{"Positiv"},
			TimeSeconds: 5,
		})
	}
	reply, err := json.Marshal(map[string]any{"title": "t", "language": "en", "scenes": scenes})
	require.NoError(t, err)

	srv := pageServer(t, http.StatusOK, productPage())
	ai := &completionMock{reply: string(reply)}
	generator := newTestGenerator(t, ai)

	brief, err := generator.Generate(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "script 1", brief.Scenes[0].Script)
	assert.Equal(t, 1, brief.Scenes[0].SceneNumber)
	assert.Equal(t, "script 5", brief.Scenes[4].Script)
}
