package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khatabook/number-change-portal/internal/relay"
	"github.com/spf13/viper"
)

type Config struct {
	Log   LogConfig
	Http  HttpConfig
	Relay relay.Config
}

type HttpConfig struct {
	Port          uint   `mapstructure:"port"`
	MetricsAPIKey string `mapstructure:"metrics_api_key"`
}

var config Config

func InitConfig() {
	_ = godotenv.Load()

	viper.SetConfigName("application")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/sms-proxy")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Hosting platforms inject the listen port as PORT.
	_ = viper.BindEnv("http.port", "PORT", "HTTP_PORT")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		panic(err)
	}

	if hosts := os.Getenv("RELAY_ALLOWED_HOSTS"); hosts != "" {
		config.Relay.AllowedHosts = strings.Split(hosts, ",")
	}

	initLogger(config.Log.Level)

	if strings.ToUpper(config.Log.Level) == LOG_LEVEL_DEBUG {
		masked := config
		if masked.Http.MetricsAPIKey != "" {
			masked.Http.MetricsAPIKey = "***"
		}
		configJSON, err := json.MarshalIndent(masked, "", "  ")
		if err == nil {
			fmt.Println("Config loaded:")
			fmt.Println(string(configJSON))
		}
	}
}
