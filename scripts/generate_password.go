// Generates a bcrypt hash for seeding accounts, such as the development
// admin created by SeedDevelopmentData. The cost follows BCRYPT_COST so the
// hash matches what the running service would produce.
//
// Usage: go run scripts/generate_password.go <password>
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}
	password := os.Args[1]

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid BCRYPT_COST %q: %v", v, err)
		}
		cost = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("Cost: %d\n", cost)
	fmt.Printf("Hash: %s\n", string(hash))
}
