package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/eventboard/internal/config"
	"github.com/forgo/eventboard/internal/model"
	"github.com/forgo/eventboard/internal/service"
	"github.com/forgo/eventboard/pkg/jwt"
)

func main() {
	// Defaults come from the same environment the server reads
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	secret := flag.String("secret", cfg.JWT.Secret, "Shared signing secret (default: $JWT_SECRET)")
	userID := flag.String("user", "", "User record ID the token is issued to (required)")
	username := flag.String("username", "", "Username claim")
	issuer := flag.String("issuer", cfg.JWT.Issuer, "JWT issuer")
	expMins := flag.Int("exp", cfg.JWT.ExpirationMins, "Token expiration in minutes, 0 for no expiry")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         *secret,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nSet JWT_SECRET or pass -secret.\n")
		os.Exit(1)
	}

	tokenService := service.NewTokenService(jwtService)
	token, err := tokenService.IssueAccessToken(&model.User{
		ID:       *userID,
		Username: *username,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"username":     *username,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	fmt.Println("Access Token Generated")
	fmt.Println("======================")
	fmt.Printf("User ID:   %s\n", *userID)
	fmt.Printf("Username:  %s\n", *username)
	if *expMins > 0 {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Printf("Expires:   %s\n", expTime.Format(time.RFC3339))
	} else {
		fmt.Println("Expires:   never")
	}
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -X POST -H 'Authorization: Bearer %s' -H 'Content-Type: application/json' \\\n", token)
	fmt.Println("    -d '{\"title\":\"...\",\"description\":\"...\",\"image\":\"...\"}' http://localhost:3001/api/events")
}
