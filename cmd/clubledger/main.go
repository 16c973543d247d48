package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pokerdesk/club_ledger/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cli.Execute()
}
