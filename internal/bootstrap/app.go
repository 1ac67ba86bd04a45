package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/assessments"
	"governance-backend/internal/assessments/risk"
	"governance-backend/internal/audit"
	googleauth "governance-backend/internal/auth"
	"governance-backend/internal/projects"
	"governance-backend/internal/shared/config"
	"governance-backend/internal/shared/server"
	"governance-backend/internal/shared/storage/cache"
	"governance-backend/internal/shared/storage/db"
	"governance-backend/internal/users"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Cache  *cache.Cache

	ProjectsRepo    projects.Repo
	AssessmentsRepo assessments.Repo
	AuditRepo       audit.Repo
	UsersRepo       users.Repo

	Engine             *risk.Engine
	ProjectsService    *projects.Service
	AssessmentsService *assessments.Service
	AuditRecorder      *audit.Recorder
	UsersService       *users.Service

	ProjectHandler    *projects.Handler
	AssessmentHandler *assessments.Handler
	AuditHandler      *audit.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	metricsCache := buildCache(ctx, cfg)

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Cache:  metricsCache,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		ProjectHandler:    app.ProjectHandler,
		AssessmentHandler: app.AssessmentHandler,
		AuditHandler:      app.AuditHandler,
		UserHandler:       app.UserHandler,
		GoogleAuth:        app.GoogleAuth,
	})
	return app, nil
}

// Close releases the app's long-lived connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
	_ = a.Cache.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildCache(ctx context.Context, cfg config.Config) *cache.Cache {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil
	}
	metricsCache, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		// A nil cache degrades to direct reads; not fatal in any env.
		log.Printf("bootstrap: redis connect failed; metrics cache disabled: %v", err)
		return nil
	}
	return metricsCache
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ProjectsRepo = &projects.PGRepo{DB: app.DB}
		app.AssessmentsRepo = &assessments.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ProjectsRepo = projects.NewMemoryRepo()
		app.AssessmentsRepo = assessments.NewMemoryRepo()
		app.AuditRepo = audit.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.Engine = risk.NewEngine()
	app.AssessmentsService = assessments.NewService(app.Engine, app.AssessmentsRepo)
	app.AuditRecorder = audit.NewRecorder(app.AuditRepo)
	app.ProjectsService = projects.NewService(app.ProjectsRepo, app.AssessmentsService, app.AuditRecorder, app.Cache)
	app.UsersService = users.NewService(app.UsersRepo)

	app.ProjectHandler = projects.NewHandler(app.ProjectsService)
	app.AssessmentHandler = assessments.NewHandler(app.AssessmentsService)
	app.AuditHandler = audit.NewHandler(app.AuditRecorder)
	app.UserHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
