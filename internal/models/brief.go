package models

import (
	"log/slog"
	"slices"
	"time"

	"github.com/mkromann/ugc-builder/internal/errors"
)

// Tones is the controlled vocabulary for scene tone tags. The briefs target Danish
// social media ads which is why the tags are in Danish.
var Tones = []string{
	"Relaterende",
	"Spørgende",
	"Forstående",
	"Ægte",
	"Informativ",
	"Positiv",
	"Praktisk",
	"Inspirerende",
	"Opmuntrende",
	"Oprigtig",
}

// GeneratedSceneCount is the number of scenes the URL generation pipeline asks the model for.
const GeneratedSceneCount = 5

var (
	ErrNoScenes     = errors.NewSentinel("brief has no scenes")
	ErrEmptyScript  = errors.NewSentinel("scene script is empty")
	ErrUnknownTone  = errors.NewSentinel("tone is not in the controlled vocabulary")
	ErrEmptyTitle   = errors.NewSentinel("brief title is empty")
	ErrNoLanguage   = errors.NewSentinel("brief language is missing")
	ErrInvalidScene = errors.NewSentinel("scene numbering is not contiguous")
)

// Visual describes the intended imagery for a scene. ImageURL starts out as a
// placeholder and is only authoritative once a real asset has been generated or
// selected for the scene.
type Visual struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Scene is one ordered unit of a Brief.
type Scene struct {
	SceneNumber int      `json:"sceneNumber"`
	SceneTitle  string   `json:"sceneTitle"`
	Script      string   `json:"script"`
	Tone        []string `json:"tone"`
	TimeSeconds float64  `json:"timeSeconds"`
	Visual      Visual   `json:"visual"`
}

// Brief is a structured multi-scene content plan for a brand or product.
type Brief struct {
	ID        string    `json:"id,omitempty" db:"id"`
	Title     string    `json:"title" db:"title"`
	Language  string    `json:"language" db:"language"`
	SourceURL string    `json:"sourceUrl,omitempty" db:"source_url"`
	BrandID   string    `json:"brandId,omitempty" db:"brand_id"`
	ActorID   string    `json:"actorId,omitempty" db:"actor_id"`
	Scenes    []Scene   `json:"scenes" db:"-"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// DeltaScene is the scene shape the chat assistant returns. It is structurally
// different from the canonical Scene: tone is a single string, duration and visual
// description are flat optional fields. It never leaks past normalization.
type DeltaScene struct {
	SceneNumber       int      `json:"sceneNumber"`
	SceneTitle        string   `json:"sceneTitle,omitempty"`
	Script            string   `json:"script"`
	Tone              *string  `json:"tone"`
	DurationSeconds   *float64 `json:"durationSeconds"`
	VisualDescription *string  `json:"visualDescription"`
}

// BriefDelta is the structured payload parsed out of a chat assistant reply. A
// non-empty Title replaces the working title and a non-nil Scenes replaces the whole
// working scene list.
type BriefDelta struct {
	Title            string       `json:"title"`
	SummaryOfChanges string       `json:"summaryOfChanges"`
	Scenes           []DeltaScene `json:"scenes"`
}

// Normalize maps the delta scenes into canonical scenes, filling documented defaults
// for absent fields so downstream code never sees an undefined value. Missing-field
// policy lives here and nowhere else.
func (d *BriefDelta) Normalize() []Scene {
	if d.Scenes == nil {
		return nil
	}
	scenes := make([]Scene, len(d.Scenes))
	for i, ds := range d.Scenes {
		scene := Scene{
			SceneNumber: i + 1,
			SceneTitle:  ds.SceneTitle,
			Script:      ds.Script,
			Tone:        nil,
			TimeSeconds: 0,
			Visual:      Visual{Description: "", ImageURL: ""},
		}
		if ds.Tone != nil && *ds.Tone != "" {
			scene.Tone = []string{*ds.Tone}
		}
		if ds.DurationSeconds != nil {
			scene.TimeSeconds = *ds.DurationSeconds
		}
		if ds.VisualDescription != nil {
			scene.Visual.Description = *ds.VisualDescription
		}
		scenes[i] = scene
	}
	return scenes
}

// ResequenceScenes orders scenes by their reported scene number and rewrites the
// numbers into a contiguous 1-based range. The model's output order is not trusted.
func ResequenceScenes(scenes []Scene) []Scene {
	resequenced := slices.Clone(scenes)
	slices.SortStableFunc(resequenced, func(a, b Scene) int {
		return a.SceneNumber - b.SceneNumber
	})
	for i := range resequenced {
		resequenced[i].SceneNumber = i + 1
	}
	return resequenced
}

// Validate checks the brief invariants: a title and language, at least one scene,
// non-empty scripts, tones from the controlled vocabulary, and unique contiguous
// 1-based scene numbers. Unknown tones are a failure, not silently dropped.
func (b *Brief) Validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.Language == "" {
		return ErrNoLanguage
	}
	if len(b.Scenes) == 0 {
		return ErrNoScenes
	}
	for i, scene := range b.Scenes {
		if scene.Script == "" {
			return errors.Wrap(ErrEmptyScript, "validate scene", slog.Int("sceneNumber", scene.SceneNumber))
		}
		if scene.SceneNumber != i+1 {
			return errors.Wrap(ErrInvalidScene, "validate scene numbering",
				slog.Int("sceneNumber", scene.SceneNumber), slog.Int("expected", i+1))
		}
		for _, tone := range scene.Tone {
			if !slices.Contains(Tones, tone) {
				return errors.Wrap(ErrUnknownTone, "validate scene tone",
					slog.Int("sceneNumber", scene.SceneNumber), slog.String("tone", tone))
			}
		}
	}
	return nil
}
