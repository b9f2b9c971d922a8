package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	ContentPath = "./content"
	ListenAddr  = ":8080"

	// Watcher settings
	WatchDebounce = 500 * time.Millisecond

	// Skeleton settings for newly created articles
	NewArticleFormat = "yaml"
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	redirectURL := getEnv("GITHUB_REDIRECT_URL", GetAppURL()+"/auth/callback")

	ContentPath = getEnv("CONTENT_PATH", "./content")
	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	NewArticleFormat = getEnv("NEW_ARTICLE_FORMAT", "yaml")

	if d := os.Getenv("WATCH_DEBOUNCE_MS"); d != "" {
		if val, err := strconv.Atoi(d); err == nil {
			WatchDebounce = time.Duration(val) * time.Millisecond
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}
