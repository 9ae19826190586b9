package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds the console's runtime configuration. All values come from
	// the environment (optionally seeded from a .env file) with defaults fit
	// for local development.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		Build    string
		AppName  string

		// SecretKey signs the browser session cookie. When empty, a random
		// key is generated at startup and sessions do not survive restarts.
		SecretKey string

		RollbarToken string

		Backend BackendConfig
		Server  ServerConfig
	}

	// BackendConfig points the console at the institution's REST backend.
	BackendConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	ServerConfig struct {
		Host            string
		Addr            string
		DebugHost       string
		ShutdownTimeout time.Duration
		SessionMaxAge   time.Duration
	}
)

// NewConfig loads the configuration from the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "ClassLog")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("backendBaseUrl", "http://localhost:3000")
	conf.SetDefault("backendTimeout", 15*time.Second)
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":4000")
	conf.SetDefault("debugHost", "localhost:4200")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("sessionMaxAge", 30*24*time.Hour)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		Backend: BackendConfig{
			BaseURL: conf.GetString("backendBaseUrl"),
			Timeout: conf.GetDuration("backendTimeout"),
		},
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Addr:            conf.GetString("serverAddr"),
			DebugHost:       conf.GetString("debugHost"),
			ShutdownTimeout: conf.GetDuration("shutdownTimeout"),
			SessionMaxAge:   conf.GetDuration("sessionMaxAge"),
		},
	}
}
