package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env into the process environment. Missing file is fine in
// deployments where the environment is injected by the platform.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using platform environment")
	}
}
