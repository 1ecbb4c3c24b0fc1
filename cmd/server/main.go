package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mazoon-pos/api/internal/config"
	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/pdf"
	"github.com/mazoon-pos/api/internal/router"
	"github.com/mazoon-pos/api/internal/store"
	"github.com/mazoon-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()

	st := store.New()
	if err := seedAdmin(st, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	renderer := pdf.NewRenderer(pdf.DefaultFontRegistry(), pdf.DefaultLogo(), cfg.RestaurantName, cfg.CurrencyCode)

	r := router.New(cfg, st, hub, renderer)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the bootstrap admin account. The store is
// in-memory, so every start begins from this single user.
func seedAdmin(st *store.Store, cfg *config.Config) error {
	if cfg.AdminPassword == "admin123" {
		log.Println("WARNING: Using default password 'admin123'. Change immediately in production!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := st.CreateUser(context.Background(), model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         enum.UserRoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded admin user %s (%s)", user.Email, user.ID)
	return nil
}
