package router

import (
	"github.com/Impagliazzo/Proyecto-LaColmena/app/controllers"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Static pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)

	// Public owner profiles
	app.Get("/owners/:id", loggedInMiddleware, controllers.HandleOwnerPublicProfile)

	// Short share URLs
	app.Get("/p/:code", loggedInMiddleware, controllers.HandleShareLink)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
