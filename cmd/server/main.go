package main // Entry point package

import (
	"log" // Logging library
	"os"

	"github.com/joho/godotenv" // .env loader for local development
)

func main() {
	// A missing .env is normal outside development; real env vars always win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env: could not load .env: %v", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
