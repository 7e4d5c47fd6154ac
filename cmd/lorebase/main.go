package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/verdantlabs/lorebase/internal/adapters/driving/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	// A local .env is a convenience for development; missing is fine.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
