package main

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// getEnvBool parses a boolean from an environment variable or returns the default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		} else {
			logrus.Warnf("Invalid boolean in %s: %v, using default: %v", key, err, defaultValue)
		}
	}
	return defaultValue
}
