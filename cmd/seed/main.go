// File: cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rental-marketplace/internal/config"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
	pg "rental-marketplace/internal/infra/db/postgres"
)

// Seeds a development database with an admin account, a sample owner and a
// few approved listings so the search and unlock flows work out of the box.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	userRepo := pg.NewUserRepo(pool)
	propertyRepo := pg.NewPropertyRepo(pool)

	// If an admin already exists, assume the database is seeded.
	if _, err := userRepo.FindByEmail(ctx, repository.NoTX, "admin@example.com"); err == nil {
		fmt.Println("admin account already present. No changes.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin, err := model.NewUser("Admin", "admin@example.com", "+919900000001", string(hash), model.UserTypeAdmin)
	if err != nil {
		log.Fatalf("build admin: %v", err)
	}
	if err := userRepo.Save(ctx, repository.NoTX, admin); err != nil {
		log.Fatalf("save admin: %v", err)
	}
	fmt.Printf("seeded: admin (id=%d)\n", admin.ID)

	owner, err := model.NewUser("Sample Owner", "owner@example.com", "+919900000002", string(hash), model.UserTypeOwner)
	if err != nil {
		log.Fatalf("build owner: %v", err)
	}
	if err := userRepo.Save(ctx, repository.NoTX, owner); err != nil {
		log.Fatalf("save owner: %v", err)
	}
	fmt.Printf("seeded: owner (id=%d)\n", owner.ID)

	contact := model.ContactDetails{Name: "Sample Owner", Phone: "+919900000002", Email: "owner@example.com"}
	seed := []struct {
		Title string
		Type  string
		City  string
		Price int64
		Beds  int
	}{
		{"2BHK apartment near metro", "apartment", "Bengaluru", 28_000, 2},
		{"Furnished 1BHK in Koramangala", "apartment", "Bengaluru", 22_000, 1},
		{"Independent house with garden", "house", "Pune", 35_000, 3},
	}
	for _, s := range seed {
		p, err := model.NewProperty(owner.ID, s.Title, s.Type, s.City, s.Price, contact)
		if err != nil {
			log.Fatalf("build property %q: %v", s.Title, err)
		}
		p.Bedrooms = s.Beds
		p.FurnishingStatus = "semi"
		if err := propertyRepo.Save(ctx, repository.NoTX, p); err != nil {
			log.Fatalf("save property %q: %v", s.Title, err)
		}
		if err := propertyRepo.SetStatus(ctx, repository.NoTX, p.ID, model.PropertyStatusApproved, ""); err != nil {
			log.Fatalf("approve property %q: %v", s.Title, err)
		}
		fmt.Printf("seeded: %s (id=%d, code=%s)\n", p.Title, p.ID, p.Code)
	}

	fmt.Println("Seeding complete.")
}
