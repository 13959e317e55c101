package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"CoinSignals/internal/di"
	"CoinSignals/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Printf("coinsignals: %v", err)
		os.Exit(1)
	}
}

// run blocks until the process is signalled; cleanup runs on every return path.
func run(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Printf("env=%s provider=%s redis=%t kafka=%t",
		cfg.Environment, cfg.CoinGecko.BaseURL, cfg.Cache.Redis.Enabled, cfg.Kafka.Enabled)

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer cleanup()

	return app.Run()
}
