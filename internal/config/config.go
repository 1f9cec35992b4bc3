package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string // postgres:// DSN, or a sqlite file path (local default)
	UploadsDir        string // root directory for uploaded car documents
	RedisURL          string // optional; traffic stats disabled when empty
	HealthAdminKey    string
	CORSAllowedSuffix string
	DevPassword       string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		// Packaged desktop default: a sqlite file next to the binary.
		dbURL = "pjmotors.db"
	}

	uploadsDir := viper.GetString("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	return &Config{
		Env:               env,
		Port:              port,
		DatabaseURL:       dbURL,
		UploadsDir:        uploadsDir,
		RedisURL:          viper.GetString("REDIS_URL"),
		HealthAdminKey:    viper.GetString("HEALTH_ADMIN_KEY"),
		CORSAllowedSuffix: viper.GetString("CORS_ALLOWED_SUFFIX"),
		DevPassword:       viper.GetString("DEV_PASSWORD"),
	}, nil
}
