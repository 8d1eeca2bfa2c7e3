package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weighttrack/internal/config"
	"weighttrack/internal/db"
	"weighttrack/internal/model"
	"weighttrack/internal/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "demopass"
	seedDays     = 120
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.WeightSample{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	weights := repository.NewWeightRepository(gormDB)

	if _, err := users.FindByUsername(ctx, demoUsername); err == nil {
		log.Println("Demo user already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &model.User{
		Username:     demoUsername,
		PasswordHash: string(hashed),
		Email:        "demo@weighttrack.local",
		FirstName:    "Demo",
		LastName:     "User",
		Birthday:     time.Date(1990, time.June, 15, 0, 0, 0, 0, time.Local),
		HeightIn:     70,
		Gender:       model.GenderMale,
		InitialHW:    true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %q", demoUsername)

	// A gentle downward trend with day-to-day noise.
	weight := 190
	seeded := 0
	for i := seedDays; i >= 0; i-- {
		day := model.DayOf(time.Now().AddDate(0, 0, -i))
		weight += rand.Intn(3) - 1
		if i%4 == 0 && weight > 160 {
			weight--
		}
		sample := &model.WeightSample{
			UserID:    user.ID,
			WeightLbs: weight,
			Date:      day,
		}
		if err := weights.Upsert(ctx, sample); err != nil {
			log.Fatalf("Failed to seed sample for %s: %v", day.Format("2006-01-02"), err)
		}
		seeded++
	}
	log.Printf("Seeded %d weight samples", seeded)
}
