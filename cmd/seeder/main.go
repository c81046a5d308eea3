package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/config"
	"github.com/mauv0809/pickleball-courts/internal/database"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

var demoPlayers = []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"}

func main() {
	force := flag.Bool("force", false, "Overwrite buckets that already hold data")
	reservations := flag.Int("reservations", 10, "Number of demo reservations to create")
	flag.Parse()

	log.Info("Starting club seeder...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	var buckets database.Buckets = database.NewBuckets(db)
	if cfg.RedisURL != "" {
		redisBuckets, err := database.NewRedisBuckets(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %s", err)
		}
		defer redisBuckets.Close()
		buckets = redisBuckets
	}

	if _, found, err := buckets.Get(ctx, club.BucketCourts); err != nil {
		log.Fatalf("Failed to read courts bucket: %s", err)
	} else if found && !*force {
		log.Warn("Club data already present, rerun with -force to overwrite")
		return
	}

	loc := cfg.Location()
	today := time.Now().In(loc)
	seed := club.DefaultSeed(today)
	payloads := map[string]any{
		club.BucketCourts:       seed.Courts,
		club.BucketSpecialSlots: []schedule.TimeSlot{},
		club.BucketReservations: []schedule.Reservation{},
		club.BucketCoaches:      seed.Coaches,
		club.BucketClinics:      seed.Clinics,
	}
	for name, v := range payloads {
		payload, err := json.Marshal(v)
		if err != nil {
			log.Fatalf("Failed to encode bucket %s: %s", name, err)
		}
		if err := buckets.Put(ctx, name, payload); err != nil {
			log.Fatalf("Failed to write bucket %s: %s", name, err)
		}
		log.Info("Seeded bucket", "bucket", name, "bytes", len(payload))
	}

	store := club.New(club.Options{
		Buckets:    buckets,
		Seed:       seed,
		WindowDays: cfg.Schedule.WindowDays,
		OpenHour:   cfg.Schedule.OpenHour,
		CloseHour:  cfg.Schedule.CloseHour,
		Exceptions: club.DefaultExceptions(today),
		MaxRetries: cfg.PersistMaxRetries,
		Now:        func() time.Time { return time.Now().In(loc) },
	})
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load seeded club: %s", err)
	}

	created := seedReservations(store, *reservations)
	log.Info("Created demo reservations", "count", created)

	closeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		log.Fatalf("Failed to flush club data: %s", err)
	}
	log.Info("Seeding complete")
}

// seedReservations books up to n random free cells.
func seedReservations(store club.ClubStore, n int) int {
	snap := store.Snapshot()
	var free []schedule.TimeSlot
	for _, slot := range snap.Slots {
		if slot.IsClinic() {
			continue
		}
		if key, ok := schedule.KeyOf(slot); ok && snap.Index.ResolveKey(key).Bookable() {
			free = append(free, slot)
		}
	}
	rand.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	created := 0
	for _, slot := range free {
		if created == n {
			break
		}
		player := demoPlayers[rand.Intn(len(demoPlayers))]
		_, err := store.Reserve(schedule.Reservation{
			ID:         uuid.NewString(),
			TimeSlotID: slot.ID,
			PlayerName: player,
			Players:    2 + 2*rand.Intn(2),
			Status:     schedule.ReservationConfirmed,
		})
		if err != nil {
			log.Warn("Skipping demo reservation", "slotID", slot.ID, "error", err)
			continue
		}
		created++
	}
	return created
}
