// Command seed fills the configured database with demo users and posts.
package main

import (
	"context"
	"flag"
	"log"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts", 5, "Number of posts per generated user")
	shouldClean := flag.Bool("clean", false, "Remove existing users and posts first")
	fixtures := flag.String("fixtures", "", "YAML fixtures file to load instead of generated data")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	s := seed.NewSeeder(db, *randSeed)

	var res seed.Result
	if *fixtures != "" {
		fx, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		if *shouldClean {
			if err := s.ClearAll(ctx); err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
		res, err = s.ApplyFixtures(ctx, fx)
		if err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	} else {
		res, err = s.Generate(ctx, seed.Options{
			NumUsers:     *numUsers,
			PostsPerUser: *postsPerUser,
			Clean:        *shouldClean,
		})
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Printf("Seeded %d users and %d posts", res.Users, res.Posts)
}
