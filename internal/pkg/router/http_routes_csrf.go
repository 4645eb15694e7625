package router

import (
	"strings"
	"time"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/controllers"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/env"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	// Public browsing. The static /properties routes must come before the
	// /properties/:uuid wildcard; fiber matches in registration order.
	group.Get("/", loggedInMiddleware, controllers.HandleHome)
	group.Get("/search", loggedInMiddleware, controllers.HandleSearch)
	group.Get("/properties/mine", middleware.RequireOwner, controllers.HandleMyProperties)
	group.Get("/properties/new", middleware.RequireOwner, controllers.HandlePropertyCreate)
	group.Post("/properties/new", middleware.RequireOwner, controllers.HandlePropertyCreate)
	group.Get("/properties/:uuid", loggedInMiddleware, controllers.HandlePropertyDetail)

	// Auth
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/auth/activate", loggedInMiddleware, controllers.HandleAuthActivate)

	// Account
	group.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Post("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	group.Get("/user/dashboard", middleware.RequireAuth, controllers.HandleUserDashboard)
	group.Get("/user/become-owner", middleware.RequireAuth, controllers.HandleBecomeOwner)
	group.Post("/user/become-owner", middleware.RequireAuth, controllers.HandleBecomeOwner)

	// Favorites
	group.Post("/properties/:uuid/favorite", middleware.RequireAuth, controllers.HandleFavoriteToggle)
	group.Get("/favorites", middleware.RequireAuth, controllers.HandleFavoriteList)

	// Contact requests and ratings
	group.Post("/properties/:uuid/contact", middleware.RequireAuth, controllers.HandleContactSend)
	group.Post("/properties/:uuid/ratings", middleware.RequireAuth, controllers.HandleRatingSubmit)
	group.Post("/ratings/:id/report", middleware.RequireAuth, controllers.HandleRatingReport)
	group.Get("/contacts/sent", middleware.RequireAuth, controllers.HandleContactSent)

	// Notifications
	group.Get("/notifications", middleware.RequireAuth, controllers.HandleNotificationList)
	group.Post("/notifications/read-all", middleware.RequireAuth, controllers.HandleNotificationReadAll)
	group.Post("/notifications/:id/read", middleware.RequireAuth, controllers.HandleNotificationRead)

	// Owner listing management
	group.Get("/properties/:uuid/edit", middleware.RequireOwner, controllers.HandlePropertyEdit)
	group.Post("/properties/:uuid/edit", middleware.RequireOwner, controllers.HandlePropertyEdit)
	group.Post("/properties/:uuid/activate", middleware.RequireOwner, controllers.HandlePropertyActivate)
	group.Post("/properties/:uuid/suspend", middleware.RequireOwner, controllers.HandlePropertySuspend)
	group.Post("/properties/:uuid/rented", middleware.RequireOwner, controllers.HandlePropertyMarkRented)
	group.Post("/properties/:uuid/delete", middleware.RequireOwner, controllers.HandlePropertyDelete)

	// Listing photos
	group.Post("/properties/:uuid/photos", middleware.RequireOwner, controllers.HandlePropertyPhotoUpload)
	group.Post("/properties/:uuid/photos/:imageID/delete", middleware.RequireOwner, controllers.HandlePropertyPhotoDelete)
	group.Post("/properties/:uuid/photos/:imageID/main", middleware.RequireOwner, controllers.HandlePropertyPhotoSetMain)

	// Contact inbox (received leads)
	group.Get("/contacts/inbox", middleware.RequireOwner, controllers.HandleContactInbox)
	group.Post("/contacts/:id/respond", middleware.RequireOwner, controllers.HandleContactRespond)

	// Subscriptions
	group.Get("/subscriptions/plans", loggedInMiddleware, controllers.HandleSubscriptionPlans)
	group.Get("/subscriptions/mine", middleware.RequireOwner, controllers.HandleSubscriptionDetail)
	group.Post("/subscriptions/subscribe/:planID", middleware.RequireOwner, controllers.HandleSubscribe)
	group.Post("/subscriptions/cancel", middleware.RequireOwner, controllers.HandleSubscriptionCancel)

	// Featured placements
	group.Get("/properties/:uuid/featured", middleware.RequireOwner, controllers.HandleFeaturedOptions)
	group.Post("/properties/:uuid/featured", middleware.RequireOwner, controllers.HandleFeaturedPurchase)
	group.Post("/properties/:uuid/featured/:placementID/deactivate", middleware.RequireOwner, controllers.HandleFeaturedDeactivate)
	group.Get("/featured/mine", middleware.RequireOwner, controllers.HandleMyPlacements)
}
