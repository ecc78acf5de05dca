package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	googleauth "jobpost-backend/internal/auth"
	"jobpost-backend/internal/jobposts"
	"jobpost-backend/internal/linkedin"
	"jobpost-backend/internal/llm"
	"jobpost-backend/internal/llm/gemini"
	"jobpost-backend/internal/organizations"
	"jobpost-backend/internal/profiles"
	"jobpost-backend/internal/shared/config"
	"jobpost-backend/internal/shared/server"
	"jobpost-backend/internal/shared/storage/db"
	"jobpost-backend/internal/shared/telemetry"
)

const devProfileSecret = "dev-profile-secret"

// ErrMissingProfileSecret is returned in production when PROFILE_SECRET is unset.
var ErrMissingProfileSecret = errors.New("PROFILE_SECRET is required in production")

// App holds shared dependencies and the assembled router.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Generator           llm.Generator
	OrganizationsRepo   organizations.Repo
	ProfilesRepo        profiles.Repo
	JobPostService      *jobposts.Service
	OrganizationService *organizations.Service
	ProfileService      *profiles.Service
	Importer            *linkedin.Importer
	GoogleAuth          *googleauth.GoogleService
}

// Option adjusts the App before services are built.
type Option func(*App)

// WithGenerator replaces the Gemini client.
func WithGenerator(g llm.Generator) Option {
	return func(a *App) { a.Generator = g }
}

// WithFetcher replaces the LinkedIn scraping client.
func WithFetcher(f linkedin.Fetcher) Option {
	return func(a *App) {
		a.Importer = &linkedin.Importer{Fetcher: f}
	}
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	box, err := buildBox(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	for _, opt := range opts {
		opt(app)
	}

	buildServices(app, box)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		JobPostHandler:      jobposts.NewHandler(app.JobPostService),
		OrganizationHandler: organizations.NewHandler(app.OrganizationService),
		LinkedInHandler:     linkedin.NewHandler(app.Importer),
		ProfileHandler:      profiles.NewHandler(app.ProfileService),
		GoogleAuth:          app.GoogleAuth,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, config.ErrMissingDatabaseURL
		}
		telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildBox(cfg config.Config) (*profiles.Box, error) {
	secret := cfg.ProfileSecret
	if secret == "" {
		if cfg.Env == "production" {
			return nil, ErrMissingProfileSecret
		}
		secret = devProfileSecret
	}
	return profiles.NewBox(secret), nil
}

func buildServices(app *App, box *profiles.Box) {
	if app.DB != nil {
		app.OrganizationsRepo = &organizations.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		app.OrganizationsRepo = organizations.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
	}

	if app.Generator == nil {
		var opts []gemini.Option
		if app.Config.GeminiModel != "" {
			opts = append(opts, gemini.WithModel(app.Config.GeminiModel))
		}
		if app.Config.GeminiBaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(app.Config.GeminiBaseURL))
		}
		app.Generator = gemini.NewClient(opts...)
	}

	app.OrganizationService = organizations.NewService(app.OrganizationsRepo)
	app.ProfileService = profiles.NewService(app.ProfilesRepo, box)
	app.JobPostService = &jobposts.Service{
		Generator: app.Generator,
		Fallback:  profiles.CredentialProvider{Profiles: app.ProfileService},
	}

	if app.Importer == nil {
		app.Importer = &linkedin.Importer{
			Fetcher: linkedin.NewClient(app.Config.ScrapingDogAPIKey, app.Config.ScrapingDogBaseURL),
		}
	}
	app.Importer.Orgs = app.OrganizationService

	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.ProfileService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
