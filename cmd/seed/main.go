package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/config"
	"wayfarer/pkg/database"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// restCountry is the REST Countries v2 shape the country reference set is
// imported from.
type restCountry struct {
	Name           string   `json:"name"`
	TopLevelDomain []string `json:"topLevelDomain"`
	Alpha2Code     string   `json:"alpha2Code"`
	Alpha3Code     string   `json:"alpha3Code"`
	CallingCodes   []string `json:"callingCodes"`
	Capital        string   `json:"capital"`
	AltSpellings   []string `json:"altSpellings"`
	Region         string   `json:"region"`
}

func main() {
	var (
		countriesURL = flag.String("countries-url", "https://restcountries.com/v2/all", "country reference data source")
		demo         = flag.Bool("demo", false, "also create demo users and posts")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	ctx := context.Background()

	if err := seedCountries(ctx, db, *countriesURL, log); err != nil {
		log.Error("Failed to import countries: %v", err)
		panic(err)
	}

	if *demo {
		if err := seedDemoUsers(ctx, db, log); err != nil {
			log.Error("Failed to create demo data: %v", err)
			panic(err)
		}
	}

	log.Info("Database seeded successfully!")
}

func seedCountries(ctx context.Context, db *gorm.DB, url string, log *logger.Logger) error {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching country data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("country data source returned %s", resp.Status)
	}

	var raw []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decoding country data: %w", err)
	}

	countryRepo := persistent.NewCountryRepository(db)
	imported := 0
	for _, rc := range raw {
		if rc.Alpha2Code == "" || rc.Alpha3Code == "" {
			continue
		}
		country := &models.Country{
			Name:           rc.Name,
			TopLevelDomain: strings.Join(rc.TopLevelDomain, ","),
			Alpha2Code:     rc.Alpha2Code,
			Alpha3Code:     rc.Alpha3Code,
			CallingCode:    strings.Join(rc.CallingCodes, ","),
			Capital:        rc.Capital,
			AltSpellings:   strings.Join(rc.AltSpellings, ","),
			Region:         rc.Region,
		}
		if err := countryRepo.Upsert(ctx, country); err != nil {
			log.Warn("Failed to upsert country %s: %v", rc.Name, err)
			continue
		}
		imported++
	}

	log.Info("Imported %d countries", imported)
	return nil
}

func seedDemoUsers(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	userRepo := persistent.NewUserRepository(db)
	profileRepo := persistent.NewProfileRepository(db)
	postRepo := persistent.NewPostRepository(db)

	demoUsers := []struct {
		username string
		email    string
		subject  string
		body     string
		alpha2   string
	}{
		{"marta_trails", "marta@example.com", "Hiking the Dolomites", "Three days across the Alta Via 1, sleeping in rifugi.", "IT"},
		{"ken_overland", "ken@example.com", "Crossing the Atacama", "Driest place on earth and the night sky proves it.", "CL"},
		{"aki_rails", "aki@example.com", "Slow trains through Kyushu", "Local lines beat the shinkansen when you have time.", "JP"},
	}

	for _, demo := range demoUsers {
		taken, err := userRepo.UsernameTaken(ctx, demo.username)
		if err != nil {
			return err
		}
		if taken {
			log.Info("User %s already exists, skipping", demo.username)
			continue
		}

		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user := &models.User{
			Username: demo.username,
			Email:    demo.email,
			Password: string(hashed),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Error("Failed to create user %s: %v", demo.username, err)
			continue
		}

		profile := &models.Profile{UserID: user.ID, IsCreate: true}
		if err := profileRepo.Create(ctx, profile); err != nil {
			log.Error("Failed to create profile for %s: %v", demo.username, err)
			continue
		}

		var country models.Country
		if err := db.WithContext(ctx).Where("alpha2_code = ?", demo.alpha2).First(&country).Error; err != nil {
			log.Warn("Country %s not imported, skipping post for %s", demo.alpha2, demo.username)
			continue
		}

		post := &models.Post{
			AuthorID:  user.ID,
			Subject:   demo.subject,
			Body:      demo.body,
			Countries: []models.Country{country},
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Error("Failed to create post for %s: %v", demo.username, err)
			continue
		}
		if err := profileRepo.IncrementPostCount(ctx, user.ID, 1); err != nil {
			log.Warn("post_count increment failed for %s: %v", demo.username, err)
		}

		log.Info("Created demo user %s with one post", demo.username)
	}

	return nil
}
