// Package repositories persists the application's models in SQLite.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/sqlite"
)

var ErrNotFound = errors.NewSentinel("not found")

type BriefRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewBriefRepository(dbs *sqlite.Database, logger *slog.Logger) *BriefRepository {
	return &BriefRepository{
		dbs:    dbs,
		logger: logger.With("source", "BriefRepository"),
	}
}

// sceneRow is the scenes table shape. Tone is stored as a JSON array in a text
// column.
type sceneRow struct {
	BriefID           string  `db:"brief_id"`
	SceneNumber       int     `db:"scene_number"`
	SceneTitle        string  `db:"scene_title"`
	Script            string  `db:"script"`
	Tone              string  `db:"tone"`
	TimeSeconds       float64 `db:"time_seconds"`
	VisualDescription string  `db:"visual_description"`
	ImageURL          string  `db:"image_url"`
}

func newSceneRow(briefID string, scene models.Scene) (sceneRow, error) {
	tone := scene.Tone
	if tone == nil {
		tone = []string{}
	}
	toneJSON, err := json.Marshal(tone)
	if err != nil {
		return sceneRow{}, errors.Wrap(err, "marshal tone")
	}
	return sceneRow{
		BriefID:           briefID,
		SceneNumber:       scene.SceneNumber,
		SceneTitle:        scene.SceneTitle,
		Script:            scene.Script,
		Tone:              string(toneJSON),
		TimeSeconds:       scene.TimeSeconds,
		VisualDescription: scene.Visual.Description,
		ImageURL:          scene.Visual.ImageURL,
	}, nil
}

func (row sceneRow) toScene() (models.Scene, error) {
	var tone []string
	if err := json.Unmarshal([]byte(row.Tone), &tone); err != nil {
		return models.Scene{}, errors.Wrap(err, "unmarshal tone", slog.Int("sceneNumber", row.SceneNumber))
	}
	if len(tone) == 0 {
		tone = nil
	}
	return models.Scene{
		SceneNumber: row.SceneNumber,
		SceneTitle:  row.SceneTitle,
		Script:      row.Script,
		Tone:        tone,
		TimeSeconds: row.TimeSeconds,
		Visual: models.Visual{
			Description: row.VisualDescription,
			ImageURL:    row.ImageURL,
		},
	}, nil
}

// Create inserts the brief and all of its scenes inside one transaction. If any
// scene insert fails the whole brief is rolled back, so a partial brief is never
// visible to readers.
func (r *BriefRepository) Create(ctx context.Context, brief *models.Brief) (string, error) {
	if err := brief.Validate(); err != nil {
		return "", errors.Wrap(err, "validate brief")
	}

	id := brief.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt := `INSERT INTO briefs (id, title, language, source_url, brand_id, actor_id)
	VALUES (:id, :title, :language, :source_url, :brand_id, :actor_id)`
	if _, err = tx.NamedExecContext(ctx, stmt, map[string]any{
		"id":         id,
		"title":      brief.Title,
		"language":   brief.Language,
		"source_url": brief.SourceURL,
		"brand_id":   brief.BrandID,
		"actor_id":   brief.ActorID,
	}); err != nil {
		return "", errors.Wrap(err, "insert brief", slog.String("title", brief.Title))
	}

	sceneStmt := `INSERT INTO scenes (brief_id, scene_number, scene_title, script, tone, time_seconds, visual_description, image_url)
	VALUES (:brief_id, :scene_number, :scene_title, :script, :tone, :time_seconds, :visual_description, :image_url)`
	for _, scene := range brief.Scenes {
		var row sceneRow
		if row, err = newSceneRow(id, scene); err != nil {
			return "", err
		}
		if _, err = tx.NamedExecContext(ctx, sceneStmt, row); err != nil {
			return "", errors.Wrap(err, "insert scene",
				slog.String("briefID", id), slog.Int("sceneNumber", scene.SceneNumber))
		}
	}

	if err = tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit brief")
	}
	return id, nil
}

// Get loads a brief with its scenes ordered by scene number.
func (r *BriefRepository) Get(ctx context.Context, id string) (*models.Brief, error) {
	var brief models.Brief
	stmt := `SELECT id, title, language, source_url, brand_id, actor_id, created_at, updated_at
	FROM briefs WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &brief, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "get brief", slog.String("briefID", id))
		}
		return nil, errors.Wrap(err, "get brief", slog.String("briefID", id))
	}

	var rows []sceneRow
	stmt = `SELECT brief_id, scene_number, scene_title, script, tone, time_seconds, visual_description, image_url
	FROM scenes WHERE brief_id = ? ORDER BY scene_number`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &rows, stmt, id); err != nil {
		return nil, errors.Wrap(err, "select scenes", slog.String("briefID", id))
	}

	brief.Scenes = make([]models.Scene, 0, len(rows))
	for _, row := range rows {
		scene, err := row.toScene()
		if err != nil {
			return nil, err
		}
		brief.Scenes = append(brief.Scenes, scene)
	}
	return &brief, nil
}

// List returns all briefs without their scenes, newest first.
func (r *BriefRepository) List(ctx context.Context) ([]models.Brief, error) {
	var briefs []models.Brief
	stmt := `SELECT id, title, language, source_url, brand_id, actor_id, created_at, updated_at
	FROM briefs ORDER BY created_at DESC, id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &briefs, stmt); err != nil {
		return nil, errors.Wrap(err, "list briefs")
	}
	return briefs, nil
}

// UpdateSceneImage replaces the visual URL of one scene, e.g. after an image has
// been generated and stored for it.
func (r *BriefRepository) UpdateSceneImage(ctx context.Context, briefID string, sceneNumber int, imageURL string) error {
	stmt := `UPDATE scenes SET image_url = ? WHERE brief_id = ? AND scene_number = ?`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, imageURL, briefID, sceneNumber)
	if err != nil {
		return errors.Wrap(err, "update scene image",
			slog.String("briefID", briefID), slog.Int("sceneNumber", sceneNumber))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrNotFound, "scene not found",
			slog.String("briefID", briefID), slog.Int("sceneNumber", sceneNumber))
	}
	return nil
}
