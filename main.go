package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fanpass/app"
	"fanpass/config"
	"fanpass/entities"
	"fanpass/store"
)

func main() {
	email := flag.String("email", "", "Email to log in with (optional)")
	password := flag.String("password", "", "Password to log in with")
	minPrice := flag.Float64("min", entities.MinPriceLimit, "Minimum ticket price")
	maxPrice := flag.Float64("max", entities.MaxPriceLimit, "Maximum ticket price")
	sortBy := flag.String("sort", "date", "Sort key: price or date")
	date := flag.String("date", "", "Exact date filter (YYYY-MM-DD)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		panic(fmt.Sprintf("Failed to build app: %v", err))
	}

	a.Start(ctx)
	session := a.Session.State()
	if session.Status == store.StatusAuthenticated {
		fmt.Printf("👋 Welcome back, %s\n", session.User.Name)
	}

	if *email != "" && session.Status != store.StatusAuthenticated {
		if err := a.Session.Login(ctx, *email, *password); err != nil {
			fmt.Println("❌ Login failed:", err)
			os.Exit(1)
		}
		session = a.Session.State()
		fmt.Printf("🔓 Logged in as %s\n", session.User.Name)
	}

	criteria, err := buildCriteria(*minPrice, *maxPrice, *sortBy, *date)
	if err != nil {
		fmt.Println("❌ Bad filter:", err)
		os.Exit(1)
	}

	if err := a.Catalog.Fetch(ctx, &criteria); err != nil {
		fmt.Println("❌ Could not fetch events:", err)
		os.Exit(1)
	}
	catalog := a.Catalog.State()
	fmt.Printf("🎟️  %d upcoming events\n", len(catalog.Events))
	for _, event := range catalog.Events {
		marker := "  "
		if session.User != nil && session.User.Favorites.Matches(event) {
			marker = "⭐"
		}
		fmt.Printf("%s %-40s %-25s %s %s  ₹%.2f  (%d seats left)\n",
			marker, event.Title(), event.Venue, event.Date, event.Time, event.Price, event.AvailableSeats)
	}

	if session.User != nil && len(session.User.Bookings) > 0 {
		fmt.Printf("\n📒 Your bookings:\n")
		for _, b := range session.User.Bookings {
			fmt.Printf("   %s  %s x%d  ₹%.2f  [%s]\n",
				b.BookingId, b.Event.Venue, b.Quantity, b.Price, b.Status)
		}
	}
}

func buildCriteria(minPrice, maxPrice float64, sortBy, date string) (entities.FilterCriteria, error) {
	criteria := entities.DefaultFilterCriteria()
	criteria.MinPrice = minPrice
	criteria.MaxPrice = maxPrice
	criteria.SortBy = entities.SortKey(sortBy)
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return entities.FilterCriteria{}, fmt.Errorf("invalid date %q: %w", date, err)
		}
		day = day.UTC()
		criteria.Date = &day
	}
	if err := criteria.Validate(); err != nil {
		return entities.FilterCriteria{}, err
	}
	return criteria, nil
}
