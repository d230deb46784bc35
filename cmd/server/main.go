package main

import (
	"log"

	"github.com/rahulm682/VideoAppBackend/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
