package repositories

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/models"
	"github.com/mkromann/ugc-builder/internal/sqlite"
)

type ActorRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewActorRepository(dbs *sqlite.Database, logger *slog.Logger) *ActorRepository {
	return &ActorRepository{
		dbs:    dbs,
		logger: logger.With("source", "ActorRepository"),
	}
}

func (r *ActorRepository) Create(ctx context.Context, actor *models.Actor) (string, error) {
	id := actor.ID
	if id == "" {
		id = uuid.NewString()
	}
	stmt := `INSERT INTO actors (id, name, nationality, gender, actor_type, profile_image_url, visual_description, elevenlabs_voice_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		id, actor.Name, actor.Nationality, actor.Gender, actor.ActorType,
		actor.ProfileImageURL, actor.VisualDescription, actor.ElevenLabsVoiceID); err != nil {
		return "", errors.Wrap(err, "insert actor", slog.String("name", actor.Name))
	}
	return id, nil
}

func (r *ActorRepository) List(ctx context.Context) ([]models.Actor, error) {
	var actors []models.Actor
	stmt := `SELECT id, name, nationality, gender, actor_type, profile_image_url, visual_description, elevenlabs_voice_id, created_at
	FROM actors ORDER BY name`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &actors, stmt); err != nil {
		return nil, errors.Wrap(err, "list actors")
	}
	return actors, nil
}
