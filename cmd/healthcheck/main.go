package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/database"
	"github.com/mkidawa/smAIcznego/internal/logging"
	"github.com/mkidawa/smAIcznego/internal/polling"
	"github.com/mkidawa/smAIcznego/internal/services"
)

func main() {
	wait := flag.Duration("wait", 0, "keep probing until healthy or this duration elapses")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	var result services.HealthCheckResult
	if *wait > 0 {
		poller := polling.Poller{Interval: 2 * time.Second, Timeout: *wait}
		err = poller.Wait(context.Background(), func(context.Context) (bool, error) {
			result = services.HealthCheck(cfg, db, zlog)
			return result.Status == "healthy", nil
		})
		if err != nil {
			log.Printf("Health did not converge: %v", err)
		}
	} else {
		result = services.HealthCheck(cfg, db, zlog)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
