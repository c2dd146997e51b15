package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jhoicas/suscripciones-api/internal/application/auth"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/suscripciones-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/suscripciones-api/internal/interfaces/http"
	"github.com/jhoicas/suscripciones-api/pkg/config"
	"github.com/jhoicas/suscripciones-api/pkg/logger"
)

// repositories implementación elegida por STORAGE_DRIVER.
type repositories struct {
	plans     repository.PlanRepository
	companies repository.CompanyRepository
	users     repository.EnterpriseUserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma dependencias y sirve hasta recibir SIGINT/SIGTERM. Los defer cierran pool y Redis
// antes de que main termine.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	checks := map[string]httpRouter.HealthCheck{}

	var repos repositories
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			plans:     memory.NewPlanRepository(store),
			companies: memory.NewCompanyRepository(store),
			users:     memory.NewEnterpriseUserRepository(store),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, cfg.DB.MigrationsDir, log.Zerolog()); err != nil {
				return fmt.Errorf("migraciones: %w", err)
			}
		}
		repos = repositories{
			plans:     postgres.NewPlanRepository(pool),
			companies: postgres.NewCompanyRepository(pool),
			users:     postgres.NewEnterpriseUserRepository(pool),
		}
		checks["postgres"] = pool.Ping
	}

	// Redis opcional: comparte el conteo del limitador de login entre réplicas
	var loginStorage fiber.Storage
	if cfg.Redis.URL != "" {
		client, err := infraredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		storage := infraredis.NewStorage(client, cfg.App.Name+":login:")
		defer storage.Close()
		loginStorage = storage
		checks["redis"] = infraredis.Healthcheck(client)
	}

	zl := log.Zerolog()
	planSvc := usecase.NewPlanService(repos.plans, zl)
	companySvc := usecase.NewCompanyService(repos.companies, repos.plans, zl)
	userSvc := usecase.NewEnterpriseUserService(repos.users, repos.companies, zl)
	loginUC := auth.NewLoginUseCase(userSvc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Debug().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger UI deshabilitado; spec disponible en /docs/doc.json")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		PlanSvc:      planSvc,
		CompanySvc:   companySvc,
		UserSvc:      userSvc,
		LoginUC:      loginUC,
		JWTSecret:    cfg.JWT.Secret,
		LoginStorage: loginStorage,
		LoginMax:     cfg.RateLimit.LoginMax,
		LoginWindow:  cfg.RateLimit.LoginWindow,
		HealthChecks: checks,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}
