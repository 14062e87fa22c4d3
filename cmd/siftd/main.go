// Command siftd runs the sift organizer daemon without the CLI surface.
package main

import (
	"context"
	"log"
	"os"

	"sift/internal/config"
	"sift/internal/daemonrun"
)

func main() {
	path := os.Getenv("SIFT_CONFIG")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{}); err != nil {
		log.Fatalf("siftd: %v", err)
	}
}
