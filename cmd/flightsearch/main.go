package main

import (
	"log"

	"github.com/roberta039/flight-search-3/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("flight search failed to start: %v", err)
	}
}
