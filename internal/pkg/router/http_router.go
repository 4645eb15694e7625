package router

import (
	"github.com/Impagliazzo/Proyecto-LaColmena/app/controllers"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/middleware"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/oauth"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// init the photo store client used by the upload handlers
	controllers.SetupPhotoStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context; nothing extra to
	// do for routes that only adapt their rendering to the session.
	return c.Next()
}
