package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/mkromann/ugc-builder/internal/ai"
	"github.com/mkromann/ugc-builder/internal/blob"
	"github.com/mkromann/ugc-builder/internal/briefgen"
	"github.com/mkromann/ugc-builder/internal/envstruct"
	"github.com/mkromann/ugc-builder/internal/errors"
	"github.com/mkromann/ugc-builder/internal/logging"
	"github.com/mkromann/ugc-builder/internal/repositories"
	"github.com/mkromann/ugc-builder/internal/sqlite"
	"github.com/mkromann/ugc-builder/internal/webpage"
)

type application struct {
	logger         *slog.Logger
	htmx           *htmx.HTMX
	sessionManager *scs.SessionManager
	generator      *briefgen.Generator
	chat           *briefgen.ChatService
	images         *ai.Client
	blobs          *blob.Store
	briefs         *repositories.BriefRepository
	actors         *repositories.ActorRepository
	brands         *repositories.BrandRepository
	assets         *repositories.AssetRepository
}

type config struct {
	Addr        string        `env:"UGCBUILDER_ADDR" envDefault:"localhost:4000"`
	SQLiteURL   string        `env:"UGCBUILDER_SQLITE_URL" envDefault:"./ugcbuilder.sqlite"`
	MediaDir    string        `env:"UGCBUILDER_MEDIA_DIR" envDefault:"./media"`
	ChatTimeout time.Duration `env:"UGCBUILDER_CHAT_TIMEOUT" envDefault:"60s"`
	APIKey      string        `env:"OPENAI_API_KEY"`
	AssistantID string        `env:"OPENAI_ASSISTANT_ID"`
}

func main() {
	loggerHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   true,
		ReplaceAttr: nil,
	})
	logger := slog.New(logging.NewContextHandler(loggerHandler))

	// The .env file is a development convenience. Deployments set real environment variables.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded")
	}

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse configuration")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", cfg.SQLiteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database")

	blobs, err := blob.NewStore(cfg.MediaDir, "/media")
	if err != nil {
		return errors.Wrap(err, "initialize blob store", slog.String("dir", cfg.MediaDir))
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	aiClient := ai.NewClient(cfg.APIKey, cfg.AssistantID, logger)

	app := application{
		logger:         logger,
		htmx:           htmx.New(),
		sessionManager: sessionManager,
		generator:      briefgen.NewGenerator(webpage.NewFetcher(logger), aiClient, logger),
		chat:           briefgen.NewChatService(aiClient, cfg.ChatTimeout, logger),
		images:         aiClient,
		blobs:          blobs,
		briefs:         repositories.NewBriefRepository(db, logger),
		actors:         repositories.NewActorRepository(db, logger),
		brands:         repositories.NewBrandRepository(db, logger),
		assets:         repositories.NewAssetRepository(db, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
