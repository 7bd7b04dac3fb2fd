package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadDotEnv loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}
}

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentInt returns the named variable as an int, or fallback when it
// is unset or not a number.
func GetEnvironmentInt(env map[string]string, name string, fallback int) int {
	value, ok := env[name]
	if !ok || value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("variable", name).Str("value", value).Msg("Ignoring non-numeric environment variable")
		return fallback
	}

	return parsed
}
