package repository

import "github.com/online-catalog/backend/internal/models"

// Seed fixtures for running without a configured database. IDs are stable so
// product option references stay valid across restarts.

// SeedOptions returns the built-in option groups.
func SeedOptions() []models.Option {
	return []models.Option{
		{ID: "opt-color", Name: "color", Values: []string{"red", "blue", "green"}},
		{ID: "opt-size", Name: "size", Values: []string{"small", "medium", "large"}},
		{ID: "opt-material", Name: "material", Values: []string{"leather", "alcantara"}},
		{ID: "opt-duty", Name: "material", Values: []string{"heavy-duty", "standard"}},
	}
}

// SeedProducts returns the built-in vehicle-parts catalog.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "part-1",
			Name:        "Performance Spark Plug Set",
			Brand:       "Ford",
			Model:       "Mustang",
			Category:    "Engine",
			Price:       "$45",
			Image:       "https://picsum.photos/seed/sparkplug/400/200",
			Description: "High-performance iridium spark plugs for improved ignition and fuel efficiency. Compatible with Ford Mustang 5.0L V8 engines.",
			OptionIDs:   []string{"opt-color", "opt-size"},
		},
		{
			ID:          "part-2",
			Name:        "Premium Shock Absorber Kit",
			Brand:       "Mercedes-Benz",
			Model:       "G-Class",
			Category:    "Suspension",
			Price:       "$280",
			Image:       "https://picsum.photos/seed/shock/400/200",
			Description: "Heavy-duty shock absorbers designed for Mercedes-Benz G-Class. Provides superior ride comfort and handling.",
			OptionIDs:   []string{"opt-duty"},
		},
		{
			ID:          "part-3",
			Name:        "Sport Steering Wheel",
			Brand:       "Ford",
			Model:       "Focus",
			Category:    "Interior",
			Price:       "$320",
			Image:       "https://picsum.photos/seed/steering/400/200",
			Description: "Premium leather sport steering wheel with paddle shifters. Direct fit for Ford Focus ST models.",
			OptionIDs:   []string{"opt-material"},
		},
		{
			ID:          "part-4",
			Name:        "High-Flow Air Filter",
			Brand:       "Ford",
			Model:       "Mustang",
			Category:    "Engine",
			Price:       "$65",
			Image:       "https://picsum.photos/seed/airfilter/400/200",
			Description: "Performance air filter for Ford Mustang. Increases airflow and engine power while maintaining filtration efficiency.",
			OptionIDs:   nil,
		},
		{
			ID:          "part-5",
			Name:        "Ceramic Brake Pad Set",
			Brand:       "Mercedes-Benz",
			Model:       "G-Class",
			Category:    "Brakes",
			Price:       "$150",
			Image:       "https://picsum.photos/seed/brakepad/400/200",
			Description: "Low-dust ceramic brake pads engineered for the Mercedes-Benz G-Class. Quiet operation and consistent stopping power.",
			OptionIDs:   nil,
		},
		{
			ID:          "part-6",
			Name:        "LED Headlight Assembly",
			Brand:       "Ford",
			Model:       "Focus",
			Category:    "Lighting",
			Price:       "$420",
			Image:       "https://picsum.photos/seed/headlight/400/200",
			Description: "Full LED headlight assembly with integrated daytime running lights. Plug-and-play replacement for Ford Focus.",
			OptionIDs:   []string{"opt-color"},
		},
	}
}
