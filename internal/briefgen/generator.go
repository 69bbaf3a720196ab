// Package briefgen holds the two AI pipelines of the application: single-shot brief
// generation from a source URL and the turn-based conversational brief editor.
package briefgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/webpage"
)

// CompletionClient is the single-shot LLM collaborator. Implementations must request
// JSON-constrained output from the model.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

const generatePromptTemplate = `You are an expert creative director specializing in User Generated Content (UGC) ads.
Based *only* on the following text content scraped from a webpage:
--- START SCRAPED TEXT ---
%s
--- END SCRAPED TEXT ---

**Task:** Generate a concise %d-scene UGC ad brief.

**Instructions:**
1. Analyze the main topic, product(s), or service described in the scraped text.
2. Create a compelling title for the UGC ad brief based on the content.
3. Detect the primary language of the text and specify its code (e.g., 'da', 'en').
4. Develop a logical %d-scene storyboard for a short video ad (e.g., TikTok, Instagram Reels).
5. For each scene, provide: sceneNumber (1-%d), sceneTitle, script, tone (choose from: %s), timeSeconds, and visual description.
6. For visual imageUrl, use a placeholder like "https://via.placeholder.com/600x400?text=Scene+[Number]+Visual".
7. **Crucially:** Format the *entire* output as a single, valid JSON object conforming *exactly* to this structure (do not add any explanations or markdown outside the JSON):
%s

If the provided text is insufficient to generate a meaningful %d-scene brief, return a JSON object with only an "error" key: {"error": "Insufficient content provided to generate brief."}`

const targetBriefSchema = `{
  "title": "string (Compelling title based on content)",
  "language": "string (Detected language code, e.g., 'da' or 'en')",
  "scenes": [
    {
      "sceneNumber": "integer (1-5)",
      "sceneTitle": "string (Short, descriptive title)",
      "script": "string (Brief script/action)",
      "tone": ["string (one or more tone tags from the allowed list)"],
      "timeSeconds": "number (Estimated duration)",
      "visual": {
        "description": "string (Visual description)",
        "imageUrl": "string (Placeholder URL like https://via.placeholder.com/600x400?text=Scene+[Num]+Visual)"
      }
    }
  ]
}`

// generatedBrief is the wire shape the generation prompt asks the model for. The
// single-key error object is the model's escape hatch for pages it cannot brief on.
type generatedBrief struct {
	Title    string         `json:"title"`
	Language string         `json:"language"`
	Scenes   []models.Scene `json:"scenes"`
	Error    string         `json:"error"`
}

// Generator runs the URL-to-brief pipeline: fetch, extract, prompt, parse, validate.
// Every step is a hard failure boundary. Nothing is retried and nothing partial is
// returned.
type Generator struct {
	fetcher *webpage.Fetcher
	ai      CompletionClient
	logger  *slog.Logger
}

func NewGenerator(fetcher *webpage.Fetcher, ai CompletionClient, logger *slog.Logger) *Generator {
	return &Generator{
		fetcher: fetcher,
		ai:      ai,
		logger:  logger.With("source", "Generator"),
	}
}

// Generate produces a validated brief from the page at rawURL.
//
// Failures are classified: webpage.ErrInvalidURL, webpage.ErrFetch,
// ErrInsufficientContent, ErrModel, ErrParse and ErrInvalidBrief.
func (g *Generator) Generate(ctx context.Context, rawURL string) (*models.Brief, error) {
	if err := webpage.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := g.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	pageText, err := webpage.ExtractText(html)
	if err != nil {
		return nil, errors.Wrap(err, "extract text", slog.String("url", rawURL))
	}
	if len(pageText) < webpage.MinTextLength {
		return nil, errors.Wrap(ErrInsufficientContent, "extracted text too short",
			slog.String("url", rawURL), slog.Int("length", len(pageText)))
	}
	g.logger.LogAttrs(ctx, slog.LevelDebug, "extracted page text",
		slog.String("url", rawURL), slog.Int("length", len(pageText)))

	prompt := buildGeneratePrompt(pageText)
	reply, err := g.ai.CompleteJSON(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrModel, err), "complete brief generation prompt")
	}

	var generated generatedBrief
	if err = json.Unmarshal([]byte(reply), &generated); err != nil {
		return nil, errors.Wrap(errors.Join(ErrParse, err), "unmarshal generated brief")
	}
	// The model used its escape hatch. Its message is the pipeline's failure.
	if generated.Error != "" {
		return nil, errors.Wrap(ErrInsufficientContent, generated.Error)
	}

	if generated.Title == "" || generated.Language == "" || len(generated.Scenes) != models.GeneratedSceneCount {
		return nil, errors.Wrap(ErrInvalidBrief, "structural validation",
			slog.Int("sceneCount", len(generated.Scenes)))
	}

	brief := models.Brief{
		Title:     generated.Title,
		Language:  generated.Language,
		SourceURL: rawURL,
		Scenes:    models.ResequenceScenes(generated.Scenes),
	}
	if err = brief.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidBrief, "validate brief")
	}
	return &brief, nil
}

func buildGeneratePrompt(pageText string) string {
	n := models.GeneratedSceneCount
	return fmt.Sprintf(generatePromptTemplate,
		pageText, n, n, n, strings.Join(models.Tones, ", "), targetBriefSchema, n)
}
