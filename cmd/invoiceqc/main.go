package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoiceqc/cmd/invoiceqc/internal/cli"
	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cli.NewRootCmd(cfg, version).Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidInvoices) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
