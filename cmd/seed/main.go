package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq"
)

const seedPassword = "password123"

var sampleAgents = []struct {
	name, email, mobile, countryCode string
}{
	{"John Smith", "john.smith@example.com", "1234567890", "+1"},
	{"Sarah Johnson", "sarah.johnson@example.com", "2345678901", "+1"},
	{"Mike Davis", "mike.davis@example.com", "3456789012", "+1"},
	{"Emily Wilson", "emily.wilson@example.com", "4567890123", "+1"},
	{"David Brown", "david.brown@example.com", "5678901234", "+1"},
}

// Seeds the admin login and five sample agents. Safe to run repeatedly:
// existing rows are left untouched.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}
	log.Println("Connected to database")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	res, err := db.Exec(`INSERT INTO admin_users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New(), "admin@example.com", string(hash), time.Now())
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Println("Admin user created: admin@example.com /", seedPassword)
	} else {
		log.Println("Admin user already exists")
	}

	created := 0
	for i, a := range sampleAgents {
		// Stagger created_at so the roster order is the listed order.
		res, err := db.Exec(`INSERT INTO agents (id, name, email, mobile_number, country_code,
			password_hash, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
			ON CONFLICT (email) DO NOTHING`,
			uuid.New(), a.name, a.email, a.mobile, a.countryCode, string(hash),
			time.Now().Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			log.Fatalf("seed agent %s: %v", a.email, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("- %s (%s)", a.name, a.email)
			created++
		}
	}
	log.Printf("Done: %d agents created", created)
}
