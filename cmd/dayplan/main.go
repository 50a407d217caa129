package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"dayplan/internal/config"
	"dayplan/internal/storage"
	"dayplan/internal/task"
	"dayplan/internal/ui"
)

const tasksKey = "tasks"

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(cfg.LogPath)
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store := task.New(db.Blob(tasksKey), task.WithLogger(logger))
	if err := store.Load(task.DateOf(time.Now())); err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}

	if err := ui.Run(store, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// openLogger returns a no-op logger unless log_path is configured; the
// TUI owns the terminal, so log lines only ever go to a file.
func openLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
