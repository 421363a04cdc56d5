// Package config loads server settings from environment variables with an
// optional .env file, via viper.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every setting the server reads at startup.
type Config struct {
	AppName     string
	Port        int
	DBPath      string
	CORSOrigins []string

	JWTSecret     string
	JWTExpiration time.Duration

	GeminiAPIKey string
	GeminiModel  string

	Debug bool
}

// Load builds the configuration. Defaults first, then a .env file if one
// exists next to the binary, then real environment variables (prefix
// PORTAL_) override everything.
func Load() Config {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "PAN-ASIA Worker Portal")
	v.SetDefault("port", 8080)
	v.SetDefault("dbPath", "portal.db")
	v.SetDefault("corsOrigins", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("jwtSecret", "dev-only-not-a-secret")
	v.SetDefault("jwtExpiration", 7*24*time.Hour)
	v.SetDefault("geminiApiKey", "")
	v.SetDefault("geminiModel", "gemini-3-flash-preview")
	v.SetDefault("debug", true)

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("config.godotenv: %v", err)
		}
	}

	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()

	return Config{
		AppName:       v.GetString("appName"),
		Port:          v.GetInt("port"),
		DBPath:        v.GetString("dbPath"),
		CORSOrigins:   splitOrigins(v.GetString("corsOrigins")),
		JWTSecret:     v.GetString("jwtSecret"),
		JWTExpiration: v.GetDuration("jwtExpiration"),
		GeminiAPIKey:  v.GetString("geminiApiKey"),
		GeminiModel:   v.GetString("geminiModel"),
		Debug:         v.GetBool("debug"),
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
