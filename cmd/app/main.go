package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"AlphaPlan/internal/di"
	"AlphaPlan/internal/repository"
	"AlphaPlan/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	inputPath := flag.String("input", "input/run_input.json", "run input snapshot path")
	timeout := flag.Duration("timeout", 30*time.Second, "run timeout")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s artifact=%s redis=%v", cfg.Environment, cfg.Artifact.Path, cfg.Redis.Enabled)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer app.Close()

	// Load the run input snapshot prepared by the upstream collectors
	input, err := repository.LoadRunInput(*inputPath)
	if err != nil {
		log.Fatalf("run input load failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if _, err := app.Run(ctx, input); err != nil {
		os.Exit(1)
	}
}
