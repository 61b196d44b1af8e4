package stripe

import (
	"fmt"
	"os"
)

// Config holds the complete Stripe configuration
type Config struct {
	APIKey string `yaml:"api_key" json:"api_key"`
}

// NewConfig creates a new Stripe configuration from environment variables
func NewConfig() (*Config, error) {
	apiKey := os.Getenv("STKZ_STRIPEAPISECRET")
	if apiKey == "" {
		return nil, fmt.Errorf("STKZ_STRIPEAPISECRET environment variable is required")
	}
	return &Config{APIKey: apiKey}, nil
}
