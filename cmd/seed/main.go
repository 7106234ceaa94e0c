package main

import (
	"fmt"
	"log"

	"souq/internal/config"
	"souq/internal/database"
)

// Seeds a development database with a shopper and a handful of listings.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	var userID string
	err = db.DB.QueryRow(`
		INSERT INTO users (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email)
		DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone
		RETURNING id`,
		"Test Shopper", "shopper@example.com", "0100000000").Scan(&userID)
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}
	fmt.Printf("User ready: shopper@example.com (%s)\n", userID)

	products := []struct {
		Name        string
		SalePrice   interface{}
		RentalTotal interface{}
	}{
		{"Canon EOS R6 Body", "42000.00", nil},
		{"Sigma 35mm f/1.4 Art", "18500.00", nil},
		{"Godox AD200 Pro Kit", nil, "600.00"},
		{"DJI Ronin RS3 Gimbal", nil, "400.00"},
	}

	for _, p := range products {
		var productID string
		err := db.DB.QueryRow(`
			INSERT INTO products (name, sale_price, rental_total, owner_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			p.Name, p.SalePrice, p.RentalTotal, userID).Scan(&productID)
		if err != nil {
			log.Fatal("Failed to create product:", err)
		}
		fmt.Printf("Product ready: %s (%s)\n", p.Name, productID)
	}

	fmt.Println("Seeding complete")
}
