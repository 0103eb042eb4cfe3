package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/database"
	"skillsync/internal/database/migration"
	dbpostgres "skillsync/internal/database/postgres"
	"skillsync/internal/database/seeder"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/infrastructure/events"
	"skillsync/internal/infrastructure/export"
	"skillsync/internal/infrastructure/llm"
	"skillsync/internal/infrastructure/persistence/postgres"
	"skillsync/internal/infrastructure/queue"
	"skillsync/internal/infrastructure/storage"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/repository"
	"skillsync/internal/usecase"
	"skillsync/internal/ws"
	"skillsync/migrations"
)

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Broker *queue.Publisher
	Events *events.Fanout
	JWT    jwt.Service

	Auth        *usecase.Auth
	Users       *usecase.User
	Skills      *usecase.Skill
	UserSkills  *usecase.UserSkill
	Profiles    *usecase.ProfileService
	Jobs        *usecase.Job
	JobMatches  *usecase.JobMatchService
	Courses     *usecase.Course
	CVAnalysis  *usecase.CVAnalysis
	Application *usecase.Application
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	if err := c.prepareDatabase(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := c.wire(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) prepareDatabase(ctx context.Context) error {
	if c.Config.Database.RunMigrations {
		r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Source: migrations.FS, Logger: c.Logger}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}
	if c.Config.Database.RunSeeders {
		catalog, err := seeder.DefaultCatalog()
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		r := seeder.Runner{Seeders: seeder.Defaults(catalog), Logger: c.Logger}
		if err := r.Run(ctx, c.DB); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) wire(ctx context.Context) error {
	cfg := c.Config

	c.Cache = cache.NewRedis(cfg.Redis, c.Logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	c.Hub = ws.NewHub(c.Logger)
	sinks := []usecase.EventPublisher{ws.NewNotifier(c.Hub)}

	broker, err := queue.NewPublisher(cfg.AMQP, c.Logger)
	if err != nil {
		// Realtime delivery still works through the websocket hub.
		c.Logger.Printf("amqp=connect status=degraded err=%v", err)
	} else if broker != nil {
		c.Broker = broker
		sinks = append(sinks, broker)
	}
	c.Events = events.NewFanout(sinks...)

	var store usecase.ObjectStore
	s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		c.Logger.Printf("storage=s3 status=degraded err=%v", err)
	} else if s3Store != nil {
		store = s3Store
	}

	var analyzer usecase.CVAnalyzer
	completer, err := llm.New(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		c.Logger.Printf("llm=%s status=disabled reason=no_api_key", cfg.LLM.Provider)
	case err != nil:
		return fmt.Errorf("llm: %w", err)
	default:
		analyzer = llm.NewCVAnalyzer(completer, c.Logger)
	}

	userRepo, err := postgres.NewUserRepository(ctx, c.DB)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(c.DB)
	companyRepo := repository.NewPostgresCompanyRepository(c.DB)
	profileRepo := repository.NewPostgresProfileRepository(c.DB)
	courseRepo := repository.NewPostgresCourseRepository(c.DB)
	cvRepo := repository.NewPostgresCVAnalysisRepository(c.DB)
	appRepo := repository.NewPostgresApplicationRepository(c.DB)

	c.Auth = usecase.NewAuthUsecase(userRepo, c.JWT, c.Cache, c.Logger)
	c.Users = usecase.NewUserUsecase(userRepo)
	c.Skills = usecase.NewSkillUsecase(skillRepo)
	c.UserSkills = usecase.NewUserSkillUsecase(userSkillRepo, skillRepo, c.Cache, c.Logger)
	c.Profiles = usecase.NewProfileUsecase(userRepo, profileRepo, companyRepo)
	c.Jobs = usecase.NewJobUsecase(jobRepo, jobSkillRepo, companyRepo, c.Cache, c.Events, c.Logger)
	c.JobMatches = usecase.NewJobMatchUsecase(userSkillRepo, jobRepo, jobSkillRepo, c.Cache, export.NewExcelReport(), c.Cache.DefaultTTL(), c.Logger).
		WithRequirementDedupe(cfg.Match.DedupeRequirements)
	c.Courses = usecase.NewCourseUsecase(courseRepo, cvRepo)
	c.CVAnalysis = usecase.NewCVAnalysisUsecase(cvRepo, skillRepo, jobSkillRepo, analyzer, store, c.Events, cfg.Upload.MaxBytes, c.Logger)
	c.Application = usecase.NewApplicationUsecase(appRepo, jobRepo, companyRepo, userRepo, c.JobMatches, c.Events)

	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Broker != nil {
		_ = c.Broker.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
