package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"billfold/internal/cli"
	"billfold/internal/log"
	"billfold/internal/seed"
)

// billfold-seed overwrites the configured backend's snapshot with freshly
// generated dummy transactions. Handy for resetting a demo environment.
func main() {
	count := flag.Int("count", 0, "number of transactions to generate (default from SEED_COUNT)")
	seedValue := flag.Int64("seed", 0, "generator seed (default from SEED_VALUE)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	if *count > 0 {
		cfg.SeedCount = *count
	}
	if *seedValue != 0 {
		cfg.SeedValue = *seedValue
	}

	ctx := context.Background()
	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("backend cleanup error", log.FieldError, err)
			}
		}
	}()

	txs := seed.Generate(cfg.SeedCount, cfg.SeedValue, time.Now())
	if err := result.Store.Save(ctx, txs); err != nil {
		logger.Error("failed to write snapshot", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	fmt.Printf("wrote %d transactions to %s backend\n", len(txs), cfg.DataBackend)
}
