package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/repository"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/featured"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/shortener"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/statistics"
)

const (
	recentListingsOnHome = 8
	studentPicksOnHome   = 4
)

// studentPicksFilter selects the newest active student-special listings for
// the home page strip.
func studentPicksFilter() repository.PropertySearchFilter {
	return repository.PropertySearchFilter{
		StudentSpecial: true,
		Limit:          studentPicksOnHome,
	}
}

// HandleHome renders the landing page: featured slots, the newest listings
// and the category strip.
func HandleHome(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	selection, err := featured.NewRankerFromDB(database.GetDB()).RankForHome()
	if err != nil {
		// The home page still works without featured slots.
		log.Printf("featured ranking failed: %v", err)
		selection = &featured.HomeSelection{}
	}

	recent, err := repos.Property.GetRecent(recentListingsOnHome)
	if err != nil {
		log.Printf("recent listings lookup failed: %v", err)
	}

	studentPicks, _, err := repos.Property.Search(studentPicksFilter())
	if err != nil {
		log.Printf("student picks lookup failed: %v", err)
	}

	categories, err := repos.Category.GetAll()
	if err != nil {
		log.Printf("category lookup failed: %v", err)
	}

	return render(c, "home/index", fiber.Map{
		"Title":            "Home",
		"FeaturedPremium":  selection.Premium,
		"FeaturedStandard": selection.Standard,
		"StudentPicks":     studentPicks,
		"Recent":           recent,
		"Categories":       categories,
		"Stats":            statistics.GetStatisticsData(),
	})
}

// HandleSearch renders the listing search with filters from the query string.
func HandleSearch(c *fiber.Ctx) error {
	filter := searchFilterFromQuery(c)

	properties, total, err := repository.GetGlobalRepositories().Property.Search(filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "search failed")
	}

	categories, _ := repository.GetGlobalRepositories().Category.GetAll()

	page := filter.Offset/filter.Limit + 1
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return render(c, "properties/search", fiber.Map{
		"Title":      "Search",
		"Properties": properties,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages,
		"Categories": categories,
		"Filter":     filter,
	})
}

// HandleShareLink resolves a short Base62 share code to the listing page.
func HandleShareLink(c *fiber.Ctx) error {
	id := shortener.DecodeID(c.Params("code"))
	if id == 0 {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	property, err := repository.GetGlobalRepositories().Property.GetByID(id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "listing not found")
	}

	return c.Redirect("/properties/"+property.UUID, fiber.StatusMovedPermanently)
}

// HandleAbout renders the static about page.
func HandleAbout(c *fiber.Ctx) error {
	return render(c, "pages/about", fiber.Map{
		"Title": "About",
	})
}

func searchFilterFromQuery(c *fiber.Ctx) repository.PropertySearchFilter {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	return repository.PropertySearchFilter{
		Query:          c.Query("q"),
		City:           c.Query("city"),
		Type:           c.Query("type"),
		Operation:      c.Query("operation"),
		CategoryID:     uint(c.QueryInt("category", 0)),
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
		MinBedrooms:    c.QueryInt("bedrooms", 0),
		Furnished:      c.QueryBool("furnished", false),
		PetsAllowed:    c.QueryBool("pets", false),
		StudentSpecial: c.QueryBool("students", false),
		Sort:           c.Query("sort"),
		Offset:         (page - 1) * limit,
		Limit:          limit,
	}
}
