package routes

import (
	"time"

	"github.com/emrekaraca/family-portal/internal/config"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/handlers"
	"github.com/emrekaraca/family-portal/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	familyHandler *handlers.FamilyHandler,
	documentHandler *handlers.DocumentHandler,
	photoHandler *handlers.PhotoHandler,
	albumHandler *handlers.AlbumHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limit: 100 req per 15 min per IP.
	api.Use(rateLimit(100, 15*time.Minute,
		"Too many requests from this IP, please try again later."))

	api.Get("/test", healthHandler.Check)

	// Stricter windows for credential endpoints: 5 req per 15 min per IP.
	loginLimiter := rateLimit(5, 15*time.Minute,
		"Too many login attempts, please try again in 15 minutes.")
	registerLimiter := rateLimit(5, 15*time.Minute,
		"Too many registration attempts, please try again in 15 minutes.")
	// Uploads: 50 per hour per IP, shared across documents and photos.
	uploadLimiter := rateLimit(50, time.Hour,
		"Upload limit reached. Please try again later.")

	auth := api.Group("/auth")
	auth.Post("/register", registerLimiter, authHandler.Register)
	auth.Post("/register-no-family", registerLimiter, authHandler.RegisterNoFamily)
	auth.Post("/login", loginLimiter, authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), middleware.LoadPrincipal(db), authHandler.Me)

	families := api.Group("/families", middleware.JWTProtected(cfg), middleware.LoadPrincipal(db))
	families.Get("/my-family", familyHandler.MyFamily)
	families.Post("/my-family", familyHandler.Create)
	families.Post("/join", familyHandler.Join)
	families.Delete("/members/:userId", middleware.FamilyAdminRequired(), familyHandler.RemoveMember)
	families.Put("/members/:userId/make-admin", middleware.FamilyAdminRequired(), familyHandler.MakeAdmin)

	documents := api.Group("/documents", middleware.JWTProtected(cfg), middleware.LoadPrincipal(db))
	documents.Get("/generate-report", documentHandler.GenerateReport)
	documents.Post("/upload", uploadLimiter, documentHandler.Upload)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Delete("/:id", documentHandler.Delete)

	photos := api.Group("/photos", middleware.JWTProtected(cfg), middleware.LoadPrincipal(db))
	photos.Post("/upload", uploadLimiter, photoHandler.Upload)
	photos.Get("/", photoHandler.List)
	photos.Get("/:id", photoHandler.Get)
	photos.Delete("/:id", photoHandler.Delete)

	albums := api.Group("/albums", middleware.JWTProtected(cfg), middleware.LoadPrincipal(db))
	albums.Post("/", albumHandler.Create)
	albums.Get("/", albumHandler.List)
	albums.Get("/:id", albumHandler.Get)
	albums.Delete("/:id", albumHandler.Delete)
}

// rateLimit builds a sliding-window limiter keyed by client IP. Each route
// group gets its own independent counter window.
func rateLimit(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error:   true,
				Message: message,
			})
		},
	})
}
