package main

import (
	"os"

	"github.com/joho/godotenv"

	"StockPulse/cmd/stockpulse/cmd"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
