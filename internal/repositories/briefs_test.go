package repositories

import (
	"context"
	"io"
	"testing"

	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBrief() *models.Brief {
	return &models.Brief{
		Title:     "To minutter til bedre morgenmad",
		Language:  "da",
		SourceURL: "https://example.com/havregryn",
		Scenes: []models.Scene{
			{
				SceneNumber: 1,
				SceneTitle:  "Hook",
				Script:      "Har du to minutter?",
				Tone:        []string{"Spørgende"},
				TimeSeconds: 4,
				Visual:      models.Visual{Description: "Talent ser i kameraet", ImageURL: "https://via.placeholder.com/600x400?text=Scene+1+Visual"},
			},
			{
				SceneNumber: 2,
				SceneTitle:  "Payoff",
				Script:      "Så har du morgenmad.",
				Tone:        []string{"Positiv", "Praktisk"},
				TimeSeconds: 6,
				Visual:      models.Visual{Description: "Skålen er klar", ImageURL: ""},
			},
		},
	}
}

func TestBriefRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleBrief())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "To minutter til bedre morgenmad", got.Title)
	assert.Equal(t, "da", got.Language)
	assert.Equal(t, "https://example.com/havregryn", got.SourceURL)
	require.Len(t, got.Scenes, 2)
	assert.Equal(t, sampleBrief().Scenes, got.Scenes)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestBriefRepository_GetUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))

	_, err := repo.Get(context.Background(), "no-such-brief")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBriefRepository_CreateRejectsInvalidBrief(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))

	brief := sampleBrief()
	brief.Scenes[0].Script = ""
	_, err := repo.Create(context.Background(), brief)
	require.ErrorIs(t, err, models.ErrEmptyScript)

	briefs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, briefs)
}

func TestBriefRepository_CreateIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	first := sampleBrief()
	first.ID = "fixed-id"
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	// A second brief with the same id fails on the brief insert; none of its scenes
	// may leak into the existing brief.
	second := sampleBrief()
	second.ID = "fixed-id"
	second.Title = "Duplicate"
	second.Scenes = second.Scenes[:1]
	_, err = repo.Create(ctx, second)
	require.Error(t, err)

	got, err := repo.Get(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "To minutter til bedre morgenmad", got.Title)
	assert.Len(t, got.Scenes, 2)
}

func TestBriefRepository_CreateFromChatDelta(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	// A brief assembled from a chat update round-trips through normalization and
	// persistence without any extra mapping.
	tone := "Opmuntrende"
	duration := 7.0
	visual := "Skålen er klar"
	delta := models.BriefDelta{
		Title:            "Chattet brief",
		SummaryOfChanges: "Added two scenes.",
		Scenes: []models.DeltaScene{
			{SceneNumber: 1, Script: "Har du to minutter?", Tone: &tone, DurationSeconds: &duration, VisualDescription: &visual},
			{SceneNumber: 2, Script: "Så har du morgenmad."},
		},
	}

	id, err := repo.Create(ctx, &models.Brief{
		Title:    delta.Title,
		Language: "da",
		Scenes:   delta.Normalize(),
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Scenes, 2)
	assert.Equal(t, []string{"Opmuntrende"}, got.Scenes[0].Tone)
	assert.Equal(t, 7.0, got.Scenes[0].TimeSeconds)
	assert.Equal(t, "Skålen er klar", got.Scenes[0].Visual.Description)
	assert.Nil(t, got.Scenes[1].Tone)
}

func TestBriefRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleBrief())
	require.NoError(t, err)
	other := sampleBrief()
	other.Title = "Anden brief"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	briefs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, briefs, 2)
	// Scenes are not loaded for the list view.
	assert.Empty(t, briefs[0].Scenes)
}

func TestBriefRepository_UpdateSceneImage(t *testing.T) {
	db := newTestDB(t)
	repo := NewBriefRepository(db, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleBrief())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateSceneImage(ctx, id, 2, "/media/abc-scene.png"))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/media/abc-scene.png", got.Scenes[1].Visual.ImageURL)
	// The other scene keeps its placeholder.
	assert.Equal(t, "https://via.placeholder.com/600x400?text=Scene+1+Visual", got.Scenes[0].Visual.ImageURL)

	require.ErrorIs(t, repo.UpdateSceneImage(ctx, id, 99, "/media/x.png"), ErrNotFound)
}
