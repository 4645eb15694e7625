package apiv1

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/featured"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/middleware"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/photostore"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/usercontext"
)

// APIServer serves the public JSON API under /api/v1.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers wires the v1 routes onto the given group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/locations", s.GetLocations)
	router.Get("/properties", s.GetProperties)
	router.Get("/properties/featured", s.GetFeaturedProperties)
	router.Get("/properties/:uuid", s.GetProperty)
	router.Get("/categories", s.GetCategories)

	authed := router.Group("", middleware.RequireAPISessionAuth)
	authed.Post("/properties/:uuid/favorite", s.PostFavoriteToggle)
	authed.Get("/favorites", s.GetFavorites)
	authed.Get("/notifications/unread", s.GetUnreadCount)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

const maxLocationSuggestions = 10

// LocationSuggestion is one autocomplete entry for the search box.
type LocationSuggestion struct {
	Text     string `json:"text"`
	FullText string `json:"full_text"`
	Type     string `json:"type"`
	Count    int64  `json:"count"`
}

// GetLocations suggests cities and districts with active listings for the
// search autocomplete.
func (s *APIServer) GetLocations(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.JSON(fiber.Map{"suggestions": []LocationSuggestion{}, "message": nil})
	}

	repos := repository.GetGlobalRepositories()
	cities, err := repos.Property.SuggestCities(query, maxLocationSuggestions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "location lookup failed",
		})
	}
	districts, err := repos.Property.SuggestDistricts(query, maxLocationSuggestions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "location lookup failed",
		})
	}

	suggestions := buildLocationSuggestions(cities, districts)

	resp := fiber.Map{"suggestions": suggestions, "message": nil}
	if len(suggestions) == 0 {
		top, _ := repos.Property.SuggestCities("", 3)
		resp["message"] = noMatchesMessage(query, top)
	}
	return c.JSON(resp)
}

// buildLocationSuggestions merges city and district matches into one ranked
// autocomplete list. Duplicates fold case-insensitively and the busiest
// locations come first.
func buildLocationSuggestions(cities, districts []repository.LocationCount) []LocationSuggestion {
	suggestions := make([]LocationSuggestion, 0, len(cities)+len(districts))

	seenCities := make(map[string]bool)
	for _, loc := range cities {
		city := strings.TrimSpace(loc.City)
		key := strings.ToLower(city)
		if city == "" || seenCities[key] {
			continue
		}
		seenCities[key] = true
		suggestions = append(suggestions, LocationSuggestion{
			Text:     city,
			FullText: city,
			Type:     "city",
			Count:    loc.Count,
		})
	}

	seenDistricts := make(map[string]bool)
	for _, loc := range districts {
		district := strings.TrimSpace(loc.District)
		key := strings.ToLower(district)
		if district == "" || seenDistricts[key] {
			continue
		}
		seenDistricts[key] = true
		full := district
		if city := strings.TrimSpace(loc.City); city != "" {
			full += ", " + city
		}
		suggestions = append(suggestions, LocationSuggestion{
			Text:     district,
			FullText: full,
			Type:     "district",
			Count:    loc.Count,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Count > suggestions[j].Count
	})
	if len(suggestions) > maxLocationSuggestions {
		suggestions = suggestions[:maxLocationSuggestions]
	}
	return suggestions
}

// noMatchesMessage points the user at the busiest cities when their query
// matched nothing.
func noMatchesMessage(query string, top []repository.LocationCount) string {
	var names []string
	for _, loc := range top {
		if city := strings.TrimSpace(loc.City); city != "" {
			names = append(names, city)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("No results for %q. Try another location.", query)
	}
	return fmt.Sprintf("No results for %q. Try searching in: %s.", query, strings.Join(names, ", "))
}

// GetProperties searches active listings with the same filters as the HTML
// search page.
func (s *APIServer) GetProperties(c *fiber.Ctx) error {
	filter := repository.PropertySearchFilter{
		Query:     c.Query("q"),
		City:      c.Query("city"),
		Type:      c.Query("type"),
		Operation: c.Query("operation"),
		MinPrice:  c.QueryFloat("min_price"),
		MaxPrice:  c.QueryFloat("max_price"),
		Sort:      c.Query("sort"),
		Offset:    c.QueryInt("offset", 0),
		Limit:     c.QueryInt("limit", 20),
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	properties, total, err := repository.GetGlobalRepositories().Property.Search(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "search failed",
		})
	}

	return c.JSON(fiber.Map{
		"total":      total,
		"properties": propertyListJSON(properties),
	})
}

// GetFeaturedProperties returns the ranked home page selection.
func (s *APIServer) GetFeaturedProperties(c *fiber.Ctx) error {
	selection, err := featured.NewRankerFromDB(database.GetDB()).RankForHome()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "ranking failed",
		})
	}

	entryJSON := func(entries []featured.Entry) []fiber.Map {
		out := make([]fiber.Map, 0, len(entries))
		for i := range entries {
			m := propertyJSON(&entries[i].Property)
			m["placement_tier"] = entries[i].Placement.Tier
			out = append(out, m)
		}
		return out
	}

	return c.JSON(fiber.Map{
		"premium":  entryJSON(selection.Premium),
		"standard": entryJSON(selection.Standard),
	})
}

// GetProperty returns one listing by UUID. Non-active listings are hidden.
func (s *APIServer) GetProperty(c *fiber.Ctx) error {
	property, err := repository.GetGlobalRepositories().Property.GetByUUID(c.Params("uuid"))
	if err != nil || !property.IsActive() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not_found", "message": "listing not found",
		})
	}

	m := propertyJSON(property)
	m["description"] = property.Description
	m["bathrooms"] = property.Bathrooms
	m["area_m2"] = property.AreaM2
	m["furnished"] = property.Furnished
	m["pets_allowed"] = property.PetsAllowed
	m["student_special"] = property.StudentSpecial
	return c.JSON(m)
}

// GetCategories lists the property categories.
func (s *APIServer) GetCategories(c *fiber.Ctx) error {
	categories, err := repository.GetGlobalRepositories().Category.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "category lookup failed",
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// PostFavoriteToggle flips the favorite state of a listing for the caller.
func (s *APIServer) PostFavoriteToggle(c *fiber.Ctx) error {
	userID := usercontext.GetUserContext(c).UserID
	repos := repository.GetGlobalRepositories()

	property, err := repos.Property.GetByUUID(c.Params("uuid"))
	if err != nil || !property.IsActive() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not_found", "message": "listing not found",
		})
	}

	exists, err := repos.Favorite.Exists(userID, property.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "favorite lookup failed",
		})
	}
	if exists {
		err = repos.Favorite.Remove(userID, property.ID)
	} else {
		err = repos.Favorite.Add(userID, property.ID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "favorite toggle failed",
		})
	}
	return c.JSON(fiber.Map{"favorited": !exists})
}

// GetFavorites lists the caller's favorited listings.
func (s *APIServer) GetFavorites(c *fiber.Ctx) error {
	userID := usercontext.GetUserContext(c).UserID
	favorites, err := repository.GetGlobalRepositories().Favorite.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "favorite lookup failed",
		})
	}

	out := make([]fiber.Map, 0, len(favorites))
	for i := range favorites {
		out = append(out, propertyJSON(&favorites[i].Property))
	}
	return c.JSON(fiber.Map{"properties": out})
}

// GetUnreadCount returns the caller's unread notification count, used by the
// navbar badge.
func (s *APIServer) GetUnreadCount(c *fiber.Ctx) error {
	userID := usercontext.GetUserContext(c).UserID
	count, err := repository.GetGlobalRepositories().Notification.CountUnreadByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_error", "message": "notification lookup failed",
		})
	}
	return c.JSON(fiber.Map{"unread": count})
}

func propertyListJSON(properties []models.Property) []fiber.Map {
	out := make([]fiber.Map, 0, len(properties))
	for i := range properties {
		out = append(out, propertyJSON(&properties[i]))
	}
	return out
}

func propertyJSON(p *models.Property) fiber.Map {
	m := fiber.Map{
		"uuid":      p.UUID,
		"title":     p.Title,
		"type":      p.Type,
		"operation": p.Operation,
		"price":     p.Price,
		"city":      p.City,
		"district":  p.District,
		"bedrooms":  p.Bedrooms,
	}
	if !p.PublishedAt.IsZero() {
		m["published_at"] = p.PublishedAt.Format(time.RFC3339)
	}
	if img := p.MainImage(); img != nil {
		if cfg := storeConfig(); cfg != nil {
			m["image"] = cfg.PublicURL(img.ThumbObjectKey)
		}
	}
	return m
}

var (
	storeConfigOnce sync.Once
	storeConfigVal  *photostore.Config
)

func storeConfig() *photostore.Config {
	storeConfigOnce.Do(func() {
		storeConfigVal, _ = photostore.LoadConfig()
	})
	return storeConfigVal
}
