package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/internal/backfill"
	"github.com/cdillerud/docsync/internal/config"
	"github.com/cdillerud/docsync/pkg/database"
)

func main() {
	var (
		file    = flag.String("file", "", "Path to a JSON array of legacy records")
		timeout = flag.Duration("timeout", 10*time.Minute, "Deadline for the whole batch")
	)
	flag.Parse()

	if *file == "" {
		fmt.Println("usage: backfill -file <records.json> [-timeout 10m]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("read batch file failed: ", err)
	}

	var records []backfill.LegacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatal("parse batch file failed: ", err)
	}
	if len(records) == 0 {
		log.Fatal("batch file contains no records")
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatal("database init failed: ", err)
	}
	conn := db.Connection()
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatal("database ping failed: ", err)
	}

	runner := backfill.New(conn, classify.DefaultConfig(), logger)

	results, err := runner.Run(ctx, records)
	if err != nil {
		log.Fatal("backfill failed: ", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		log.Fatal("encode results failed: ", err)
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("backfill finished with failures", "failed", failed, "total", len(results))
		os.Exit(1)
	}
}
