package routes

import (
	"leetboard-backend/controllers"
	"leetboard-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	// Auth
	api.Post("/register", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Get("/verify-email", controllers.VerifyEmail)
	api.Post("/resend-verification", controllers.ResendVerification)
	api.Get("/me", middleware.RequireAuth, controllers.GetMe)

	// LeetCode lookup and stats refresh
	api.Get("/leetcode-user", controllers.GetLeetCodeUser)
	api.Post("/refresh-leetcode-stats", controllers.RefreshStats)

	// Groups (owner only)
	api.Post("/groups", middleware.RequireAuth, controllers.CreateGroup)
	api.Get("/groups", middleware.RequireAuth, controllers.ListGroups)
	api.Get("/groups/:id", middleware.RequireAuth, controllers.GetGroup)
	api.Delete("/groups/:id", middleware.RequireAuth, controllers.DeleteGroup)
	api.Post("/groups/:id/share", middleware.RequireAuth, controllers.ShareGroup)
	api.Get("/groups/:id/stats", middleware.RequireAuth, controllers.GetGroupStats)

	// Members
	api.Post("/groups/:id/members", middleware.RequireAuth, controllers.AddMember)
	api.Post("/groups/:id/members/import", middleware.RequireAuth, controllers.ImportMembers)
	api.Put("/members/:id", middleware.RequireAuth, controllers.UpdateMember)
	api.Delete("/members/:id", middleware.RequireAuth, controllers.DeleteMember)

	// Public leaderboard, no auth; the link token is the authorization
	api.Get("/public/:public_link", controllers.GetPublicGroupStats)

	api.Post("/contact", middleware.RequireAuth, controllers.ContactHandler)
}
