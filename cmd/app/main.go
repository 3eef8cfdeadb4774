package main

import (
	"flag"
	"fmt"
	"os"

	"MacroPulse/internal/di"
	"MacroPulse/pkg/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	checkOnly := flag.Bool("check", false, "validate the configuration and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	if *checkOnly {
		fmt.Printf("config ok: env=%s port=%d cache=%s scheduler=%t clickhouse=%t kafka=%t\n",
			cfg.Environment, cfg.Server.Port, cfg.Cache.Type,
			cfg.Scheduler.Enabled, cfg.ClickHouse.Enabled, cfg.Kafka.Enabled)
		return 0
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		return 1
	}
	defer cleanup()

	// blocks until SIGINT/SIGTERM, then drains sinks before the clients close
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return 1
	}
	return 0
}
