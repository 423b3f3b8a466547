package main

import (
	"mugen/internal/ui"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	ui.CreateApplication()
}
