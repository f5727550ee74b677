package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/andrisatya/marketplace-api/config"
)

// Seeds two demo users, a couple of products and a comment for local
// development. Subject ids mimic identity-provider ids.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := []struct {
		id, email, name string
	}{
		{"user_2demoAlice000000000000000", "alice@example.com", "Alice"},
		{"user_2demoBob00000000000000000", "bob@example.com", "Bob"},
	}
	for _, u := range users {
		if _, err := db.Exec(`
			INSERT INTO users (id, email, name, avatar_url)
			VALUES ($1, $2, $3, '')
			ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = now()
		`, u.id, u.email, u.name); err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s\n", u.id, u.email)
	}

	var productID string
	if err := db.QueryRow(`
		INSERT INTO products (title, description, image_url, user_id)
		VALUES ('Mechanical keyboard', 'Hot-swappable 65% board, barely used', 'https://example.com/kb.jpg', $1)
		RETURNING id
	`, users[0].id).Scan(&productID); err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	fmt.Printf("seeded product: id=%s\n", productID)

	if _, err := db.Exec(`
		INSERT INTO products (title, description, image_url, user_id)
		VALUES ('Road bike', '54cm frame, fresh tires', 'https://example.com/bike.jpg', $1)
	`, users[1].id); err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO comments (content, user_id, product_id)
		VALUES ('Is this still available?', $1, $2)
	`, users[1].id, productID); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}
	fmt.Println("seeded comment")
}
