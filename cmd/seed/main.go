package main

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/favoritesapp/favorites-api/internal/config"
	"github.com/favoritesapp/favorites-api/pkg/auth"
	"github.com/favoritesapp/favorites-api/pkg/database"
	"github.com/favoritesapp/favorites-api/pkg/logger"
)

type account struct {
	name     string
	email    string
	password string
	role     string
}

// Seeds the default accounts. Safe to run repeatedly; existing emails are
// left untouched.
func main() {
	adminPassword := flag.String("admin-password", "password123", "password for the seeded admin account")
	clientPassword := flag.String("client-password", "password123", "password for the seeded client account")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.ServiceName+"-seed", cfg.IsDevelopment())

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	accounts := []account{
		{name: "Admin", email: "admin@example.com", password: *adminPassword, role: "admin"},
		{name: "Client", email: "client@example.com", password: *clientPassword, role: "client"},
	}

	for _, a := range accounts {
		created, err := seedAccount(db, a)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("email", a.email).Msg("Failed to seed account")
		}
		if created {
			logger.Logger.Info().Str("email", a.email).Str("role", a.role).Msg("Account created")
		} else {
			logger.Logger.Info().Str("email", a.email).Msg("Account already exists, skipped")
		}
	}
}

func seedAccount(db *sql.DB, a account) (bool, error) {
	hash, err := auth.HashPassword(a.password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO users (name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		a.name, a.email, hash, a.role,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
