// Command legalease is the LegalEase command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/legalease-labs/legalease/internal/adapters/driving/cli"
	"github.com/legalease-labs/legalease/internal/app"
	"github.com/legalease-labs/legalease/internal/core/ports/driving"

	configfile "github.com/legalease-labs/legalease/internal/adapters/driven/config/file"
)

func main() {
	cfg, err := configfile.LoadConfig(os.Getenv("LEGALEASE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	// QA stays nil when no LLM provider is configured; the ask command
	// reports that instead of failing at startup.
	var qa driving.QAService
	if application.QA != nil {
		qa = application.QA
	}
	cli.SetServices(application.Ingestion, application.Retrieval, qa)
	cli.Execute()
}
