package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first readable .env file. Existing process variables
// are never overridden. Returns the file loaded, or "" when none exists.
func loadEnvFile() (string, error) {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		if err == nil {
			return name, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return "", err
	}
	return "", nil
}
