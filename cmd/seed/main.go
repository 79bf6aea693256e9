package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/sportgear/ecommerce-auth/config"
	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
)

// Seeds the initial admin account. Admins are never self-registered; the
// register endpoint forces the CUSTOMER role.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := envOr("SEED_ADMIN_EMAIL", "admin@sportgear.local")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme1")

	hasher := helpers.NewBcryptHasher()
	admin := &entity.User{Email: email, FirstName: "Admin", Role: entity.RoleAdmin, Status: entity.StatusActive}
	if err := admin.SetPassword(password, hasher); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	admin.FinalizeForCreate()

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, status = EXCLUDED.status
		RETURNING id
	`, admin.Email, admin.PasswordHash, admin.FirstName, admin.Role, admin.Status, admin.CreatedAt).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
