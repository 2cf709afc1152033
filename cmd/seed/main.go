package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/service"
)

// Catalog fixture format. The stock foodstuff list ships as a JSON array of
// {"name": ..., "measurement_unit": ...} objects; tags follow the same idea.
type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagFixture struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func main() {
	ingredientsPath := flag.String("ingredients", "", "path to ingredients JSON fixture")
	tagsPath := flag.String("tags", "", "path to tags JSON fixture")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		log.Fatal("nothing to seed: pass -ingredients and/or -tags")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	catalog := service.NewCatalogService(db)
	ctx := context.Background()

	if *ingredientsPath != "" {
		var fixtures []ingredientFixture
		if err := readJSON(*ingredientsPath, &fixtures); err != nil {
			log.Fatalf("Failed to read ingredients fixture: %v", err)
		}
		created := 0
		for _, f := range fixtures {
			if _, err := catalog.CreateIngredient(ctx, f.Name, f.MeasurementUnit); err != nil {
				log.Printf("Skipping ingredient %q: %v", f.Name, err)
				continue
			}
			created++
		}
		log.Printf("Seeded %d of %d ingredients", created, len(fixtures))
	}

	if *tagsPath != "" {
		var fixtures []tagFixture
		if err := readJSON(*tagsPath, &fixtures); err != nil {
			log.Fatalf("Failed to read tags fixture: %v", err)
		}
		created := 0
		for _, f := range fixtures {
			if _, err := catalog.CreateTag(ctx, f.Name, f.Color, f.Slug); err != nil {
				log.Printf("Skipping tag %q: %v", f.Slug, err)
				continue
			}
			created++
		}
		log.Printf("Seeded %d of %d tags", created, len(fixtures))
	}
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
