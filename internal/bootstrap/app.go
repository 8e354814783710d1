// Package bootstrap assembles the API's dependencies from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-optimizer/internal/account"
	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/generatedresumes"
	"resume-optimizer/internal/generation"
	"resume-optimizer/internal/jobdesc"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/llm/anthropic"
	"resume-optimizer/internal/llm/openai"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/selector"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/cache"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server"
	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/storage/object"
	localstore "resume-optimizer/internal/shared/storage/object/local"
	s3store "resume-optimizer/internal/shared/storage/object/s3"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/usage"
	"resume-optimizer/internal/users"
	"resume-optimizer/resume/render"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Redis        *redis.Client
	Store        object.ObjectStore
	Signer       *auth.Signer
	Users        *users.Service
	Profiles     *profiles.Service
	Experiences  *experiences.Service
	TargetJobs   *targetjobs.Service
	Resumes      *generatedresumes.Service
	Usage        *usage.Service
	Orchestrator *generation.Orchestrator
}

// Overrides lets tests replace external collaborators.
type Overrides struct {
	Completer llm.Completer
	Fetcher   jobdesc.Source
	Renderer  render.Renderer
}

// Build prepares dependencies and wires routes. Without DATABASE_URL, dev-like
// environments fall back to in-memory repositories.
func Build(cfg config.Config, ov ...Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	var o Overrides
	if len(ov) > 0 {
		o = ov[0]
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.Env, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Store: store, Signer: signer}
	app.Redis = buildRedis(ctx, cfg)

	completer := o.Completer
	if completer == nil {
		completer = BuildCompleter(cfg)
	}
	fetcher := o.Fetcher
	if fetcher == nil {
		fetcher = BuildFetcher(cfg, app.Redis)
	}
	renderer := o.Renderer
	if renderer == nil {
		renderer = render.NewPDFRenderer(cfg.ChromePath, cfg.RenderTimeout)
	}

	buildServices(app, completer, fetcher, renderer)

	healthSvc := health.NewService()
	if sqlDB != nil {
		healthSvc.Register("database", sqlDB)
	}
	if app.Redis != nil {
		rdb := app.Redis
		healthSvc.Register("redis", health.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Verifier:          signer,
		Health:            healthSvc,
		UserHandler:       users.NewHandler(app.Users, signer),
		AccountHandler:    account.NewHandler(account.NewService(app.Users, app.Profiles, app.Experiences, app.TargetJobs, app.Usage)),
		ProfileHandler:    profiles.NewHandler(app.Profiles),
		ExperienceHandler: experiences.NewHandler(app.Experiences),
		TargetJobHandler:  targetjobs.NewHandler(app.TargetJobs),
		ResumeHandler:     generatedresumes.NewHandler(app.Resumes),
		GenerateHandler:   generation.NewHandler(app.Orchestrator),
	})
	return app, nil
}

func buildServices(app *App, completer llm.Completer, fetcher jobdesc.Source, renderer render.Renderer) {
	var (
		userRepo       users.Repo
		profileRepo    profiles.Repo
		experienceRepo experiences.Repo
		jobRepo        targetjobs.Repo
		resumeRepo     generatedresumes.Repo
		usageSvc       *usage.Service
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
		experienceRepo = &experiences.PGRepo{DB: app.DB}
		jobRepo = &targetjobs.PGRepo{DB: app.DB}
		resumeRepo = &generatedresumes.PGRepo{DB: app.DB}
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		userRepo = users.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		experienceRepo = experiences.NewMemoryRepo()
		jobRepo = targetjobs.NewMemoryRepo()
		resumeRepo = generatedresumes.NewMemoryRepo()
		usageSvc = usage.NewService(app.Config.ResumeLimit)
	}

	app.Users = users.NewService(userRepo, app.Config.ResumeLimit)
	app.Profiles = profiles.NewService(profileRepo)
	app.Experiences = experiences.NewService(experienceRepo)
	app.Resumes = generatedresumes.NewService(resumeRepo, app.Store)
	app.TargetJobs = targetjobs.NewService(jobRepo, fetcher, app.Resumes)
	app.Usage = usageSvc
	app.Orchestrator = &generation.Orchestrator{
		Jobs:        app.TargetJobs,
		Profiles:    app.Profiles,
		Experiences: app.Experiences,
		Quota:       usageSvc,
		Fetcher:     fetcher,
		Selector:    selector.New(completer),
		Renderer:    renderer,
		Store:       app.Store,
		Resumes:     resumeRepo,
		Options: generation.Options{
			BrandPrefix: app.Config.BrandPrefix,
			TargetCount: app.Config.TargetBulletCount,
		},
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap: DATABASE_URL empty; using in-memory repositories", nil)
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap: database unavailable; using in-memory repositories", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// BuildStore returns the configured artifact store.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildCompleter returns the configured model client. Missing credentials
// leave selection in fallback mode rather than failing startup.
func BuildCompleter(cfg config.Config) llm.Completer {
	var (
		client llm.Completer
		err    error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.Unconfigured{}
	case "openai":
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		client, err = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel, cfg.AnthropicURL, cfg.LLMTimeout)
	}
	if err != nil {
		telemetry.Warn("bootstrap: llm client unavailable; bullet selection will use original bullets", map[string]any{
			"provider": cfg.LLMProvider,
			"error":    err.Error(),
		})
		return llm.Unconfigured{}
	}
	return client
}

// BuildFetcher returns the job posting fetcher, cached in redis when available.
func BuildFetcher(cfg config.Config, rdb *redis.Client) jobdesc.Source {
	fetcher := jobdesc.NewFetcher(cfg.FetchTimeout)
	if rdb == nil {
		return fetcher
	}
	return jobdesc.NewCachedFetcher(fetcher, rdb, cfg.JDCacheTTL)
}

func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil
	}
	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		telemetry.Warn("bootstrap: redis unavailable; job descriptions will not be cached", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
