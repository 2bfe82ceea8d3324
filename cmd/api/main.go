package main

import (
	"log"
	"os"

	"github.com/hatruonggiang/vleague-scheduler/internal/api"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_URL")
	if dbPath == "" {
		dbPath = "vleague-scheduler.db"
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := db.Migrate(migrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	server := api.NewServer(db.Conn())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting scheduler API server on port %s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
