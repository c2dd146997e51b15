package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/suscripciones-api/internal/application/auth"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
	"github.com/swaggo/swag"

	// registra la especificación OpenAPI en swag
	_ "github.com/jhoicas/suscripciones-api/docs"
)

// HealthCheck verifica una dependencia externa (base de datos, redis).
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	PlanSvc    *usecase.PlanService
	CompanySvc *usecase.CompanyService
	UserSvc    *usecase.EnterpriseUserService
	LoginUC    *auth.LoginUseCase
	JWTSecret  string

	// Login rate limit. LoginStorage nil = memoria del proceso.
	LoginStorage fiber.Storage
	LoginMax     int
	LoginWindow  time.Duration

	HealthChecks map[string]HealthCheck
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.AppName, deps.HealthChecks))
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	api := app.Group("/api")

	// Plans
	plans := api.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanSvc)
	plans.Get("/", planHandler.List)
	plans.Post("/", planHandler.Create)
	plans.Get("/:id", planHandler.GetByID)
	plans.Put("/:id", planHandler.Update)
	plans.Delete("/:id", planHandler.Delete)
	plans.Post("/:id/features", planHandler.AddFeature)
	plans.Delete("/:id/features", planHandler.RemoveFeature)

	// Companies y suscripciones
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanySvc, deps.UserSvc)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/subscribe", companyHandler.Subscribe)
	companies.Post("/:id/cancel-subscription", companyHandler.CancelSubscription)
	companies.Get("/:id/subscriptions", companyHandler.Subscriptions)
	companies.Get("/:id/enterprise-users", companyHandler.Users)

	// Enterprise users; login y /me antes de /:id
	users := api.Group("/enterprise-users")
	userHandler := NewEnterpriseUserHandler(deps.UserSvc, deps.LoginUC)
	users.Post("/login", loginLimiter(deps), userHandler.Login)
	users.Get("/me", AuthMiddleware(deps.JWTSecret), userHandler.Me)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}

// loginLimiter limita intentos de login por IP en una ventana fija.
func loginLimiter(deps RouterDeps) fiber.Handler {
	limit := deps.LoginMax
	if limit <= 0 {
		limit = 5
	}
	window := deps.LoginWindow
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		Storage:    deps.LoginStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiados intentos de login, intente más tarde"})
		},
	})
}

func healthHandler(service string, checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "service": service, "checks": results})
	}
}
