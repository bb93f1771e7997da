package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/dugouthq/dugout/config"
	"github.com/dugouthq/dugout/pkg/helpers"
)

// Seeds a demo user into Postgres and, when the duckdb driver is configured,
// a small interaction corpus so the content endpoints return data locally.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	seedUser(cfg)
	if cfg.AnalyticsDriver == "duckdb" {
		seedInteractions(cfg)
	}
}

func seedUser(cfg *config.Config) {
	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "fan@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, favorite_team_ids, favorite_player_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET first_name=EXCLUDED.first_name
		RETURNING id
	`, email, hash, "Demo", "Fan", "{147,119}", "{660271,592450}").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)
}

func seedInteractions(cfg *config.Config) {
	db, err := sql.Open("duckdb", cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("failed to open duckdb: %v", err)
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			user_id VARCHAR,
			slug VARCHAR,
			content_type VARCHAR,
			content_headline VARCHAR,
			followed_team_ids BIGINT[],
			followed_player_ids BIGINT[]
		)`, cfg.InteractionTable),
		fmt.Sprintf(`DELETE FROM %s`, cfg.InteractionTable),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('u1','judge-walkoff','article','Judge walks it off in the 9th',[147,119],[592450,660271]),
			('u2','judge-walkoff','article','Judge walks it off in the 9th',[147],[592450]),
			('u3','ohtani-two-homers','video','Ohtani launches two homers',[119],[660271]),
			('u1','ohtani-two-homers','video','Ohtani launches two homers',[147,119],[592450,660271]),
			('u4','dodgers-sweep','article','Dodgers complete the sweep',[119,147],[660271]),
			('u2','trade-deadline-recap','podcast','Winners and losers of the deadline',[147],[592450])
		`, cfg.InteractionTable),
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			log.Fatalf("failed to seed interactions: %v", err)
		}
	}
	fmt.Printf("seeded interaction corpus into %s (%s)\n", cfg.DuckDBPath, cfg.InteractionTable)
}
