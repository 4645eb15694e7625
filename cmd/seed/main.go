package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/Impagliazzo/Proyecto-LaColmena/app/models"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/database"
	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/env"
)

// Seeds the category and subscription plan catalogs. Safe to run more than
// once: existing rows (matched by name) are left alone.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	db := database.GetDB()

	seedCategories(db)
	seedPlans(db)

	log.Println("Seed finished")
}

func seedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Departamentos", Icon: "building", Color: "blue", SortOrder: 1},
		{Name: "Casas", Icon: "home", Color: "green", SortOrder: 2},
		{Name: "Habitaciones", Icon: "door-open", Color: "amber", SortOrder: 3},
		{Name: "Oficinas", Icon: "briefcase", Color: "slate", SortOrder: 4},
		{Name: "Locales comerciales", Icon: "store", Color: "red", SortOrder: 5},
		{Name: "Terrenos", Icon: "map", Color: "lime", SortOrder: 6},
	}

	for _, category := range categories {
		var existing models.Category
		err := db.Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Category lookup failed: %v", err)
		}
		if err := db.Create(&category).Error; err != nil {
			log.Fatalf("Failed to seed category %q: %v", category.Name, err)
		}
		log.Printf("Seeded category %q", category.Name)
	}
}

func seedPlans(db *gorm.DB) {
	plans := []models.SubscriptionPlan{
		{
			Name:             "Básico",
			Description:      "Para empezar: tu primer anuncio gratis más uno adicional.",
			Price:            0,
			DurationDays:     30,
			MaxExtraListings: 1,
			Tier:             models.PlanTierBasic,
			Active:           true,
			SortOrder:        1,
		},
		{
			Name:                  "Estándar",
			Description:           "Hasta 5 anuncios adicionales y acceso a destacados.",
			Price:                 29.99,
			DurationDays:          30,
			MaxExtraListings:      5,
			CanPurchasePlacements: true,
			Tier:                  models.PlanTierMid,
			Active:                true,
			SortOrder:             2,
		},
		{
			Name:                  "Premium",
			Description:           "Hasta 15 anuncios adicionales, destacados incluidos y soporte prioritario.",
			Price:                 59.99,
			DurationDays:          30,
			MaxExtraListings:      15,
			IncludedPlacements:    1,
			CanPurchasePlacements: true,
			PrioritySupport:       true,
			Tier:                  models.PlanTierTop,
			Active:                true,
			SortOrder:             3,
		},
	}

	for _, plan := range plans {
		var existing models.SubscriptionPlan
		err := db.Where("name = ?", plan.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Plan lookup failed: %v", err)
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Fatalf("Failed to seed plan %q: %v", plan.Name, err)
		}
		log.Printf("Seeded plan %q", plan.Name)
	}
}
