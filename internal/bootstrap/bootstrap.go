package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/edusphere/edusphere/internal/app/controllers"
	appMigrations "github.com/edusphere/edusphere/internal/app/migrations"
	appRepos "github.com/edusphere/edusphere/internal/app/repositories"
	appRoutes "github.com/edusphere/edusphere/internal/app/routes"
	appServices "github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/config"
	"github.com/edusphere/edusphere/internal/db"
	appMiddleware "github.com/edusphere/edusphere/internal/middleware"
	pkgAuth "github.com/edusphere/edusphere/internal/pkg/auth"
	"github.com/edusphere/edusphere/internal/pkg/filestorage"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
	"github.com/edusphere/edusphere/internal/pkg/llm"
	"github.com/edusphere/edusphere/internal/pkg/logger"
	"github.com/edusphere/edusphere/internal/pkg/vcs"
	"github.com/edusphere/edusphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services

	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	StudentController      *appControllers.StudentController
	InternshipController   *appControllers.InternshipController
	ApplicationController  *appControllers.ApplicationController
	MentorController       *appControllers.MentorController
	CreditController       *appControllers.CreditController
	NotificationController *appControllers.NotificationController
	ChatController         *appControllers.ChatController
	ForumController        *appControllers.ForumController
	MessageController      *appControllers.MessageController
	PortfolioController    *appControllers.PortfolioController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	LLMClient      *llm.Client
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed failures are not fatal, the API works without default data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves uploaded documents and generated CVs
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Extraction and CV generation degrade gracefully without an API key
	if cfg.LLM.APIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		deps.LLMClient, err = llm.NewClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize LLM client, document extraction will use pattern matching only")
			deps.LLMClient = nil
		}
	} else {
		lgr.Warn().Msg("No LLM API key configured, document extraction will use pattern matching only")
	}

	githubClient := vcs.NewGitHubClient(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret, cfg.GitHub.CallbackURL)

	deps.Services = &appServices.Services{
		Auth:         appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService, lgr),
		User:         appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository, lgr),
		Student:      appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.UserRepository, lgr),
		Internship:   appServices.NewInternshipService(deps.Repos.InternshipRepository, lgr),
		Application:  appServices.NewApplicationService(deps.Repos.ApplicationRepository, deps.Repos.InternshipRepository, deps.Repos.StudentRepository, deps.Repos.NotificationRepository, cfg.Application.AllowReopenWithdrawn, lgr),
		Mentor:       appServices.NewMentorService(deps.Repos.MentorRepository, deps.Repos.StudentRepository, deps.Repos.UserRepository, deps.Repos.NotificationRepository, lgr),
		Credit:       appServices.NewCreditService(deps.Repos.CreditRepository, deps.Repos.StudentRepository, deps.Repos.NotificationRepository, lgr),
		Notification: appServices.NewNotificationService(deps.Repos.NotificationRepository, deps.Repos.UserRepository, lgr),
		Chat:         appServices.NewChatService(deps.Repos.ChatRepository, deps.Repos.UserRepository, deps.Repos.InternshipRepository, lgr),
		Forum:        appServices.NewForumService(deps.Repos.ForumRepository, lgr),
		Message:      appServices.NewMessageService(deps.Repos.MessageRepository, deps.Repos.UserRepository, deps.Repos.NotificationRepository, lgr),
		Certification: appServices.NewCertificationService(
			deps.Repos.CertificationRepository, deps.Repos.StudentRepository, deps.FileStorage, deps.LLMClient, lgr),
		CV: appServices.NewCVService(
			deps.Repos.PortfolioRepository, deps.Repos.CertificationRepository, deps.Repos.StudentRepository, deps.FileStorage, deps.LLMClient, lgr),
		GitHub: appServices.NewGitHubService(
			deps.Repos.UserRepository, deps.Repos.StudentRepository, deps.Repos.PortfolioRepository, githubClient, lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.UserController = appControllers.NewUserController(deps.Services.User)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Student)
	deps.InternshipController = appControllers.NewInternshipController(deps.Services.Internship)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.Application, deps.Services.Student)
	deps.MentorController = appControllers.NewMentorController(deps.Services.Mentor, deps.Services.Student)
	deps.CreditController = appControllers.NewCreditController(deps.Services.Credit, deps.Services.Student)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.Notification)
	deps.ChatController = appControllers.NewChatController(deps.Services.Chat)
	deps.ForumController = appControllers.NewForumController(deps.Services.Forum)
	deps.MessageController = appControllers.NewMessageController(deps.Services.Message)
	deps.PortfolioController = appControllers.NewPortfolioController(
		deps.Services.Certification, deps.Services.CV, deps.Services.GitHub, deps.Services.Student)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.StudentController,
		deps.InternshipController,
		deps.ApplicationController,
		deps.MentorController,
		deps.CreditController,
		deps.NotificationController,
		deps.ChatController,
		deps.ForumController,
		deps.MessageController,
		deps.PortfolioController,
		deps.AuthMiddleware,
	)

	return router
}
