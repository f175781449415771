package handler

import (
	"practice-quest/internal/middleware"
	"practice-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Sessions      *SessionHandler
	Users         *UserHandler
	PracticeItems *PracticeItemHandler
	Admin         *AdminHandler
}

// RegisterRoutes mounts the API. limiter is attached to each route after
// authentication so every endpoint keeps its own window per user.
func RegisterRoutes(api fiber.Router, h Handlers, authService service.AuthService, limiter fiber.Handler) {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	vm := middleware.NewValidationMiddleware()
	protected := middleware.Protected(authService)

	api.Get("/leaderboard", limiter, vm.ValidatePagination(), h.Users.GetLeaderboard)

	sessions := api.Group("/sessions", protected)
	sessions.Post("/", limiter, h.Sessions.RecordSession)
	sessions.Post("/:id/feedback", limiter, vm.ValidateULIDParam("id"), h.Sessions.GenerateFeedback)

	users := api.Group("/users", protected)
	users.Put("/me/leaderboard", limiter, h.Users.SetLeaderboardVisibility)
	users.Get("/me/badges", limiter, h.Users.GetMyBadges)
	users.Get("/me/gems", limiter, vm.ValidatePagination(), h.Users.GetMyGems)
	users.Post("/me/shields", limiter, h.Users.PurchaseShield)
	users.Post("/me/streak/recover", limiter, h.Users.RecoverStreak)
	users.Get("/:id/stats", limiter, h.Users.GetStats)

	items := api.Group("/practice-items", protected)
	items.Post("/", limiter, h.PracticeItems.Create)
	items.Get("/", limiter, h.PracticeItems.List)
	items.Delete("/:id", limiter, vm.ValidateULIDParam("id"), h.PracticeItems.Archive)

	admin := api.Group("/admin", protected, middleware.AdminOnly(authService))
	admin.Get("/badges", limiter, h.Admin.ListBadges)
	admin.Post("/badges", limiter, h.Admin.CreateBadge)
	admin.Put("/badges/:badge_key", limiter, h.Admin.UpdateBadge)
	admin.Delete("/badges/:badge_key", limiter, h.Admin.DeleteBadge)
	admin.Post("/clear-all-user-data", limiter, h.Admin.ClearAllUserData)
	admin.Post("/users/:id/gems", limiter, h.Admin.AdjustGems)
	admin.Get("/users/:id/gems/reconcile", limiter, h.Admin.ReconcileGems)
}
