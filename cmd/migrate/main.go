package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/migrator"
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-config config.toml] up|down|step-up|drop\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	action := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if err := migrator.Run(cfg.Database.MigrationsPath, cfg.Database.URL(), action, log); err != nil {
		log.Fatal("Migration %s failed: %v", action, err)
	}
}
