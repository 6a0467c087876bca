// Command seed wipes the listings and reviews tables and loads a set of
// sample listings owned by a demo user, for local development.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/wanderlust/web/internal/config"
	"github.com/wanderlust/web/internal/database"
	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/repository"
	"github.com/wanderlust/web/internal/service"
)

type sampleListing struct {
	title       string
	description string
	imageURL    string
	price       float64
	location    string
	country     string
}

var samples = []sampleListing{
	{
		title:       "Cozy Beachfront Cottage",
		description: "Escape to this charming beachfront cottage for a relaxing getaway. Enjoy stunning ocean views and easy access to the beach.",
		imageURL:    "https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b?w=860&q=80",
		price:       1500,
		location:    "Malibu",
		country:     "United States",
	},
	{
		title:       "Modern Loft in Downtown",
		description: "Stay in the heart of the city in this stylish loft apartment. Perfect for urban explorers!",
		imageURL:    "https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=860&q=80",
		price:       1200,
		location:    "New York City",
		country:     "United States",
	},
	{
		title:       "Mountain Retreat",
		description: "Unplug and unwind in this peaceful mountain cabin surrounded by forest trails.",
		imageURL:    "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=860&q=80",
		price:       1000,
		location:    "Aspen",
		country:     "United States",
	},
	{
		title:       "Historic Canal House",
		description: "Experience the charm of the canals from this beautifully restored 17th-century house.",
		imageURL:    "https://images.unsplash.com/photo-1587381420270-3e1a5b9e6904?w=860&q=80",
		price:       2000,
		location:    "Amsterdam",
		country:     "Netherlands",
	},
	{
		title:       "Secluded Treehouse Getaway",
		description: "Live among the treetops in this unique treehouse. A true nature lover's paradise.",
		imageURL:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=860&q=80",
		price:       800,
		location:    "Port Angeles",
		country:     "United States",
	},
	{
		title:       "Beachfront Paradise",
		description: "Step out of your door onto the sandy beach. This place offers the ultimate relaxation.",
		imageURL:    "https://images.unsplash.com/photo-1499793983690-e29da59ef1c2?w=860&q=80",
		price:       2000,
		location:    "Cancun",
		country:     "Mexico",
	},
	{
		title:       "Rustic Vineyard Farmhouse",
		description: "Stay amidst rolling vineyards in this cozy farmhouse. Wine tastings included.",
		imageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=860&q=80",
		price:       1100,
		location:    "Tuscany",
		country:     "Italy",
	},
	{
		title:       "Ski-In/Ski-Out Chalet",
		description: "Hit the slopes right from your doorstep in this luxurious alpine chalet.",
		imageURL:    "https://images.unsplash.com/photo-1502784444187-359ac186c5bb?w=860&q=80",
		price:       3000,
		location:    "Verbier",
		country:     "Switzerland",
	},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Start from a clean slate, wiping both tables atomically
	wipe := database.NewTxBuilder()
	wipe.AddRaw("DELETE review")
	wipe.AddRaw("DELETE listing")
	if _, err := database.ExecuteTransaction(ctx, db, wipe); err != nil {
		slog.Error("failed to clear tables", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	authService := service.NewAuthService(service.AuthServiceConfig{UserRepo: userRepo})

	// Reuse the demo account if a previous seed created it
	owner, err := userRepo.GetByUsername(ctx, "demo")
	if err != nil {
		slog.Error("failed to look up demo user", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if owner == nil {
		owner, err = authService.Signup(ctx, &model.SignupRequest{
			Username: "demo",
			Email:    "demo@wanderlust.example",
			Password: "demopassword",
		})
		if err != nil {
			slog.Error("failed to create demo user", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	for _, s := range samples {
		listing := &model.Listing{
			Title:       s.title,
			Description: s.description,
			Image:       model.ListingImage{Filename: model.DefaultImageFilename, URL: s.imageURL},
			Price:       s.price,
			Location:    s.location,
			Country:     s.country,
			OwnerID:     owner.ID,
		}
		if err := listingRepo.Create(ctx, listing); err != nil {
			slog.Error("failed to seed listing",
				slog.String("title", s.title),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	slog.Info("seeded sample data",
		slog.Int("listings", len(samples)),
		slog.String("owner", owner.ID),
	)
}
