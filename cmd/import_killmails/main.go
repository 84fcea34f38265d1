package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/meur/fitforge/internal/ingest"
	"github.com/meur/fitforge/internal/logger"
	"github.com/meur/fitforge/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./fitforge.db", "SQLite database path")
	flag.Parse()

	log := logger.New("fitforge-import", "info")
	if flag.NArg() == 0 {
		log.Fatal().Msg("usage: import_killmails [-db path] killmails.jsonl...")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load type catalog")
	}
	if len(catalog.Types) == 0 {
		log.Fatal().Msg("Type catalog is empty; run seed first")
	}

	rd := &ingest.Reader{Catalog: catalog, Sink: store, Log: log}
	var total ingest.Stats
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to open killmails")
		}
		st, err := rd.Run(ctx, f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Import failed")
		}
		log.Info().Str("path", path).
			Int("read", st.Read).Int("stored", st.Stored).
			Int("skipped", st.Skipped).Int("failures", st.Failures).
			Msg("Imported killmails")
		total.Read += st.Read
		total.Stored += st.Stored
		total.Skipped += st.Skipped
		total.Failures += st.Failures
	}

	log.Info().Int("read", total.Read).Int("stored", total.Stored).Msg("Import complete")
}
