// scripts/gcal-auth/main.go
//
// One-time Google Calendar authorization for couple-schedule-manager.
// Run locally to complete the OAuth Desktop flow and write token.json,
// which the service's gcalendar client picks up at startup.
//
// Usage:
//   go run scripts/gcal-auth/main.go [credentials.json]
//
// Without an argument the credentials path is read from the service
// config (google_calendar.credentials_path in config.yaml, or the
// GOOGLE_CALENDAR_CREDENTIALS_PATH environment variable).

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const tokenPath = "token.json"

// credentialsPath resolves the OAuth credentials file: CLI argument first,
// then the service config, matching the search paths of config.Load.
func credentialsPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = viper.ReadInConfig()

	if path := viper.GetString("google_calendar.credentials_path"); path != "" {
		return path
	}
	return "google-credentials.json"
}

func main() {
	credsPath := credentialsPath()

	data, err := os.ReadFile(credsPath)
	if err != nil {
		log.Fatalf("Failed to read credentials file %q: %v", credsPath, err)
	}

	oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("Failed to parse credentials: %v\nMake sure %q is an OAuth Desktop App credentials file.", err, credsPath)
	}

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("=================================================================")
	fmt.Println("Step 1: Open this URL in a browser and sign in to Google:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("Step 2: Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	tok, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}

	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", tokenPath, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		log.Fatalf("Failed to write %s: %v", tokenPath, err)
	}

	fmt.Println()
	fmt.Printf("Token saved to %s.\n", tokenPath)
	fmt.Println("Restart the couple-schedule-manager API to enable calendar sync.")
}
