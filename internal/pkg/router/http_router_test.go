package router

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(app *fiber.App) map[string]bool {
	routes := make(map[string]bool)
	for _, route := range app.GetRoutes() {
		routes[fmt.Sprintf("%s %s", route.Method, route.Path)] = true
	}
	return routes
}

func TestSubscriptionRedirectsLandOnRegisteredRoutes(t *testing.T) {
	app := fiber.New()
	HttpRouter{}.registerCSRFProtectedRoutes(app)

	routes := registeredRoutes(app)

	// Subscribe and cancel both flash-redirect to the subscription detail
	// page, and plan errors land back on the catalog.
	assert.True(t, routes["GET /subscriptions/mine"])
	assert.True(t, routes["GET /subscriptions/plans"])
	assert.False(t, routes["GET /subscriptions"], "there is no bare /subscriptions page")
}

func TestListingManagementRoutesRegistered(t *testing.T) {
	app := fiber.New()
	HttpRouter{}.registerCSRFProtectedRoutes(app)

	routes := registeredRoutes(app)

	for _, path := range []string{
		"GET /properties/mine",
		"POST /properties/:uuid/featured",
		"GET /featured/mine",
	} {
		assert.True(t, routes[path], "expected route %s", path)
	}
}
