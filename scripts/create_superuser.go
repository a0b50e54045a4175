package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/gin-recipe-api/internal/config"
	"github.com/franciscosanchezn/gin-recipe-api/internal/database"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "admin@example.com", "Superuser email")
	password := flag.String("password", "", "Superuser password")
	withClient := flag.Bool("client", false, "Also create a client_credentials OAuth client owned by the superuser")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()
	user, err := services.NewUserService(db).CreateSuperuser(ctx, *email, *password)
	if err != nil {
		log.Fatal("Failed to create superuser:", err)
	}
	fmt.Printf("✓ Superuser created: %s (ID: %d)\n", user.Email, user.ID)

	if !*withClient {
		fmt.Println("\nRequest a token with:")
		fmt.Printf("curl -X POST http://localhost:8080/api/v1/user/token \\\n")
		fmt.Printf("  -d 'grant_type=password' \\\n")
		fmt.Printf("  -d 'client_id=%s' \\\n", conf.OAuthClientID)
		fmt.Printf("  -d 'username=%s' -d 'password=...'\n", user.Email)
		return
	}

	client, secret, err := services.NewClientService(db).CreateClient(ctx, user.ID, services.ClientRequest{
		Name:       "Superuser Client",
		Domain:     "http://localhost",
		GrantTypes: services.GrantClientCredentials,
	})
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", secret)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/user/token \\\n")
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", secret)
}
