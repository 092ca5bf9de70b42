package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"tdb/internal/engine"
	"tdb/internal/storage"
	"tdb/internal/storage/filestore"
	"tdb/internal/table"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tdb:", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("f", "", "database file (overrides config)")
	configPath := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	demo := flag.Bool("demo", false, "run the write/reload demo sequence and exit")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	if *file != "" {
		cfg.File = *file
	}

	ll := &slog.LevelVar{}
	ll.Set(cfg.level())
	if *verbose {
		ll.Set(slog.LevelDebug)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	if *demo {
		return runDemo(cfg.File)
	}

	db, err := openDB(cfg.File)
	if err != nil {
		return err
	}
	return repl(db, cfg)
}

// openDB loads the database file if it exists, or starts empty. The load
// error kinds matter here: an IO failure might be transient and is worth
// retrying, a malformed file is corrupt and retrying won't help.
func openDB(path string) (*engine.DB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("starting with empty database", "file", path)
		return engine.New(), nil
	}

	db, err := filestore.Load(path)
	if err != nil {
		var le *storage.LoadError
		if errors.As(err, &le) && le.Kind == storage.LoadMalformed {
			return nil, fmt.Errorf("%s is not a valid database file (corrupt or wrong format): %w", path, err)
		}
		return nil, fmt.Errorf("could not read %s (retry may help): %w", path, err)
	}
	slog.Info("loaded database", "file", path, "columns", db.NumColumns(), "rows", db.NumRows())
	return db, nil
}

// runDemo exercises the canonical end-to-end sequence: build a table with
// one text column, one row, persist it, reload it through the codec, and
// print the value at (0, 0).
func runDemo(path string) error {
	db := engine.New()

	if _, err := db.Query(table.AppendColumn("Name", table.TypeText)); err != nil {
		return err
	}
	if _, err := db.Query(table.AppendRow(table.Value{Kind: table.KindText, S: "John"})); err != nil {
		return err
	}
	if err := filestore.Save(path, db); err != nil {
		return err
	}
	slog.Debug("saved demo database", "file", path)

	loaded, err := filestore.Load(path)
	if err != nil {
		return err
	}
	resp, err := loaded.Query(table.Fetch(0, 0))
	if err != nil {
		return err
	}
	fmt.Println(resp.Value)
	return nil
}
