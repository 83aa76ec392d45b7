package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// LLM Gateway Configuration
	GatewayAPIKey   string `mapstructure:"GATEWAY_API_KEY"`  // Bearer credential for the gateway
	GatewayBaseURL  string `mapstructure:"GATEWAY_BASE_URL"` // OpenAI-compatible endpoint; defaults to the hosted gateway
	GenerationModel string `mapstructure:"GENERATION_MODEL"` // e.g., "google/gemini-2.5-flash"

	// Pipeline Configuration
	PromptStyle     string `mapstructure:"PROMPT_STYLE"`     // "detailed" (default) or "concise"
	RequireComplete bool   `mapstructure:"REQUIRE_COMPLETE"` // treat missing css/js after fallback extraction as a parse failure
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")

	// Defaults also register the keys so AutomaticEnv can fill them.
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("GATEWAY_API_KEY", "")
	viper.SetDefault("GATEWAY_BASE_URL", "")
	viper.SetDefault("GENERATION_MODEL", "")
	viper.SetDefault("PROMPT_STYLE", "detailed")
	viper.SetDefault("REQUIRE_COMPLETE", false)

	viper.AutomaticEnv() // Read environment variables that match keys

	// Attempt to read the config file
	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, continue; env vars may carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	// Unmarshal the configuration into the Config struct
	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return
}

// Validate reports startup-time configuration faults. The gateway
// credential is required: the process must refuse to serve without it
// rather than fail requests one by one.
func (c Config) Validate() error {
	if c.GatewayAPIKey == "" {
		return errors.New("GATEWAY_API_KEY is required")
	}
	return nil
}
