package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbomb79/Siphon/internal"
	"github.com/hbomb79/Siphon/pkg/logger"
	"github.com/joho/godotenv"
)

var log = logger.Get("Bootstrap")

// main() is the entry point to the program. From here we load
// the users configuration (from an optional YAML file, a .env file
// and the environment) before starting Siphon and waiting for it to stop.
func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Emit(logger.WARNING, "Failed to load .env file: %v\n", err)
	}

	var config internal.SiphonConfig
	if err := config.Load(*configPath); err != nil {
		log.Emit(logger.FATAL, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.SetMinLoggingLevel(logger.ParseLevel(config.LogLevel).Level())

	siphon, err := internal.New(config)
	if err != nil {
		log.Emit(logger.FATAL, "Failed to initialise Siphon: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := siphon.Run(ctx); err != nil {
		log.Emit(logger.FATAL, "Siphon stopped unexpectedly: %v\n", err)
		stop()
		os.Exit(1)
	}

	log.Emit(logger.STOP, "Siphon stopped\n")
}
