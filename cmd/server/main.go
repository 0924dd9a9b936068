package main

import (
	"log"
	"net/http"
	"time"

	"voyago/internal/auth"
	"voyago/internal/config"
	"voyago/internal/handlers"
	"voyago/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := bootstrapAdmin(db, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	go cleanSessionsLoop(db)

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.SecureCookie)
	mux := setupRouter(h, cfg.StaticDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	return h.Router(staticDir)
}

// bootstrapAdmin ensures the configured admin account exists. An
// existing user with that name is promoted rather than recreated.
func bootstrapAdmin(db *storage.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	if existing, err := db.GetUserByUsername(username); err == nil {
		if existing.IsAdmin {
			return nil
		}
		return db.PromoteToAdmin(username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = db.CreateUser(username, hash, true)
	return err
}

func cleanSessionsLoop(db *storage.DB) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := db.CleanExpiredSessions(); err != nil {
			log.Printf("Failed to clean expired sessions: %v", err)
		}
	}
}
