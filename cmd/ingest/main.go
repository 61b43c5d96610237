package main

import (
	"context"
	"flag"
	"log"

	"ai-coursechat-be/internal/bootstrap"
	"ai-coursechat-be/internal/config"
	"ai-coursechat-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// Batch loader for course documents: parses, chunks and embeds every
// .txt/.md file in a folder and writes the results straight to the indexes,
// skipping the HTTP queue.
func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.App.DocsPath, "folder containing course documents")
	clear := flag.Bool("clear", false, "re-ingest courses that already exist")
	flag.Parse()

	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	} else {
		color.Yellow("No DB_CONNECTION_STRING set: ingesting into in-memory indexes (results are discarded on exit)")
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	color.Cyan("Ingesting course documents from %s ...", *dir)

	result, err := container.IngestService.IngestFolder(context.Background(), *dir, *clear)
	if err != nil {
		color.Red("Ingestion failed: %v", err)
		log.Fatal(err)
	}

	for _, w := range result.Warnings {
		color.Yellow("warning: %s", w)
	}
	color.Green("Done: %d courses, %d chunks", result.CoursesAdded, result.ChunksAdded)
}
