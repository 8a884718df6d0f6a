package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khatabook/number-change-portal/internal/api/http"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/khatabook/number-change-portal/internal/relay"
	"github.com/spf13/viper"
)

type Config struct {
	Log     LogConfig
	Http    http.Config
	DB      db.Config
	JWT     auth.Config
	Admin   auth.AdminConfig
	Gateway gateway.Config
	Relay   relay.Config
}

const redacted = "***"

var config Config

func ParseCommaSeparated(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func InitConfig() {
	var err error

	_ = godotenv.Load()

	viper.SetConfigName("application")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/portal-server")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	// Vendor endpoints and template ids default to the production values.
	config.Gateway = gateway.DefaultConfig()
	err = viper.Unmarshal(&config)
	if err != nil {
		panic(err)
	}

	if origins := os.Getenv("HTTP_ALLOWED_ORIGINS"); origins != "" {
		config.Http.AllowedOrigins = ParseCommaSeparated(origins)
	}
	if hosts := os.Getenv("RELAY_ALLOWED_HOSTS"); hosts != "" {
		config.Relay.AllowedHosts = ParseCommaSeparated(hosts)
	}

	// Initialize logger with configured log level
	initLogger(config.Log.Level)

	// Pretty print config as JSON (only at DEBUG level)
	if strings.ToUpper(config.Log.Level) == LOG_LEVEL_DEBUG {
		configJSON, err := json.MarshalIndent(redact(config), "", "  ")
		if err == nil {
			fmt.Println("Config loaded:")
			fmt.Println(string(configJSON))
		}
	}
}

func redact(c Config) Config {
	mask := func(s *string) {
		if *s != "" {
			*s = redacted
		}
	}
	mask(&c.DB.Url)
	mask(&c.JWT.Secret)
	mask(&c.Admin.PasswordHash)
	mask(&c.Http.MetricsAPIKey)
	mask(&c.Gateway.Push.Passcode)
	mask(&c.Gateway.SMS.Password)
	mask(&c.Gateway.WhatsApp.Password)
	return c
}
