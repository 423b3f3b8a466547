// Main entry point for the application
package main

import (
	"log"

	"mugen/internal/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Set the logger prefix
	log.SetPrefix("Mugen Gallery ")

	// A .env file can supply GEMINI_API_KEY during development.
	godotenv.Load()

	ui.CreateApplication()
}
