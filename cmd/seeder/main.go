package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/database"
	"github.com/mauv0809/club-pairing/internal/pairing"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	members := flag.Int("members", 24, "number of demo members to create")
	interested := flag.Float64("interested", 0.8, "share of members answering yes")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	store := club.New(db)
	startTime := time.Now()
	gameID, yes, err := seedClub(context.Background(), store, *members, *interested, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
	log.Info("Seeding complete", "gameID", gameID, "members", *members, "interested", yes, "duration", time.Since(startTime))
}

var skills = []pairing.SkillLevel{pairing.Beginner, pairing.Intermediate, pairing.Advanced}

// seedClub creates n members with random skill levels and a game day open
// for a week, then records a yes for roughly share of them. It returns the
// game day id and the number of yes answers.
func seedClub(ctx context.Context, store club.ClubStore, n int, share float64, rng *rand.Rand) (int64, int, error) {
	for i := range n {
		member := club.Member{
			ID:         int64(i + 1),
			FirstName:  "Seeder",
			LastName:   fmt.Sprintf("Player %02d", i+1),
			Email:      fmt.Sprintf("seeder%02d@example.com", i+1),
			SkillLevel: skills[rng.Intn(len(skills))],
			Role:       club.RoleMember,
		}
		if i == 0 {
			member.Role = club.RoleAdmin
		}
		if err := store.UpsertMember(ctx, member); err != nil {
			return 0, 0, err
		}
	}
	log.Info("Ensured demo members exist.", "count", n)

	day, err := store.CreateGameDay(ctx, club.GameDay{
		Name:             "seed-" + uuid.NewString()[:8],
		Title:            "Seeded club night",
		DayToPlay:        time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		InterestDeadline: time.Now().AddDate(0, 0, 6),
		CreatedBy:        "seeder",
	})
	if err != nil {
		return 0, 0, err
	}

	yes := 0
	for i := range n {
		interested := rng.Float64() < share
		if err := store.RecordInterest(ctx, day.ID, int64(i+1), interested); err != nil {
			return 0, 0, err
		}
		if interested {
			yes++
		}
	}
	return day.ID, yes, nil
}
