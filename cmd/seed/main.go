package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-blog-api/config"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", id, email, name, password)

	posts := []struct {
		title, content string
	}{
		{"Hello, world", "First post from the seeded demo user."},
		{"Second post", "Nothing to see here yet."},
	}
	for _, p := range posts {
		var postID string
		if err := db.QueryRow(`
			INSERT INTO posts (title, content, user_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.title, p.content, id).Scan(&postID); err != nil {
			log.Fatalf("failed to seed post: %v", err)
		}
		fmt.Printf("seeded post: id=%s title=%q\n", postID, p.title)
	}
}
