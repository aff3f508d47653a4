package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger. Development gets the console
// encoder, anything else gets production JSON.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
