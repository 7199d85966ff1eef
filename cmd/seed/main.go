package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"libris/internal/auth"
	"libris/internal/config"
	"libris/internal/db"
	"libris/internal/model"
	"libris/internal/repository"
)

type seedBook struct {
	Title    string
	Author   string
	ISBN     string
	Quantity int
}

var seedBooks = []seedBook{
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", ISBN: "9780134190440", Quantity: 3},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", Quantity: 2},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780201616224", Quantity: 2},
	{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Quantity: 1},
	{Title: "Structure and Interpretation of Computer Programs", Author: "Harold Abelson", ISBN: "9780262510875", Quantity: 1},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}, &model.Borrowing{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	// Admin account, created once
	const adminEmail = "admin@library.local"
	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == gorm.ErrRecordNotFound {
		hash, err := auth.HashPassword("admin123")
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := &model.User{
			Username:     "admin",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin account %s", adminEmail)
	} else if err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	} else {
		log.Println("Admin account already present, skipping")
	}

	// Starter catalog, skipping books already present by ISBN
	created := 0
	for _, sb := range seedBooks {
		if _, err := bookRepo.FindByISBN(ctx, sb.ISBN); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up book %q: %v", sb.Title, err)
		}
		isbn := sb.ISBN
		book := &model.Book{
			Title:     sb.Title,
			Author:    sb.Author,
			ISBN:      &isbn,
			Quantity:  sb.Quantity,
			Available: sb.Quantity > 0,
		}
		if err := bookRepo.Create(ctx, book); err != nil {
			log.Fatalf("Failed to create book %q: %v", sb.Title, err)
		}
		created++
	}
	log.Printf("Seed complete: %d new books", created)
}
