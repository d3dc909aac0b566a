// Command seed fills the database with fake users and posts for local
// development.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	users := flag.Int("users", 3, "number of fake users to create")
	posts := flag.Int("posts", 40, "number of fake posts to create")
	password := flag.String("password", "password123", "password shared by all seeded users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seeded := make([]*models.User, 0, *users)
	for i := 0; i < *users; i++ {
		user := &models.User{
			// Usernames must satisfy the registration rules: letters and digits only.
			Username:       fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Word()), gofakeit.Number(10, 99)),
			HashedPassword: string(hash),
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %q: %v", user.Username, err)
		}
		seeded = append(seeded, user)
	}

	batch := make([]*models.Post, 0, *posts)
	for i := 0; i < *posts; i++ {
		owner := seeded[i%len(seeded)]
		batch = append(batch, &models.Post{
			Title:  gofakeit.Sentence(4),
			Body:   gofakeit.Paragraph(2, 4, 12, " "),
			Tags:   models.Tags{gofakeit.Word(), gofakeit.Word()},
			UserID: owner.ID,
		})
	}
	if err := db.CreateInBatches(batch, 100).Error; err != nil {
		log.Fatalf("Failed to create posts: %v", err)
	}

	log.Printf("Seeded %d users and %d posts", len(seeded), len(batch))
}
