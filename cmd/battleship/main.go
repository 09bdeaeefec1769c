package main

import (
	"github.com/joho/godotenv"

	"github.com/mcoot/battleship/internal/cli"
)

func main() {
	// Optional .env supplies BATTLESHIP_SERVER and friends
	_ = godotenv.Load()

	cli.Execute()
}
