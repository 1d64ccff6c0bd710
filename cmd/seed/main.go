package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/pkg/database"
)

// Seeds a login account. Existing accounts get their password rotated
// instead of failing, so the seeder is safe to rerun.
func main() {
	username := flag.String("username", "", "username to create")
	password := flag.String("password", "", "plaintext password to hash and store")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("Error: -username and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: *username})
	if err != nil {
		log.Fatalf("Error: Failed to look up user: %v", err)
	}

	if existing != nil {
		if err := uow.UserRepository().UpdatePassword(ctx, *username, string(hash)); err != nil {
			log.Fatalf("Error: Failed to update password: %v", err)
		}
		log.Printf("Updated password for existing user %q", *username)
		return
	}

	user := &entity.User{
		Id:             uuid.New(),
		Username:       *username,
		HashedPassword: string(hash),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		log.Fatalf("Error: Failed to create user: %v", err)
	}
	log.Printf("Created user %q", *username)
}
