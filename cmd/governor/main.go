package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/impactchain/npo-governance/pkg/app"
	"github.com/impactchain/npo-governance/pkg/app/governor"
	"github.com/impactchain/npo-governance/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = governor.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Governor exited: %v\n", err)
		os.Exit(1)
	}
}
