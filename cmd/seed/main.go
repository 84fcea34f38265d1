package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/meur/fitforge/internal/logger"
	"github.com/meur/fitforge/internal/models"
	"github.com/meur/fitforge/internal/storage"
)

// sdeGroup and sdeType match groups.json and items.json, both keyed by id.
type sdeGroup struct {
	Name     string
	Lower    string
	Category int
}

type sdeType struct {
	ID    int
	Name  string
	Lower string
	Group int
}

func main() {
	dbPath := flag.String("db", "./fitforge.db", "SQLite database path")
	sdeDir := flag.String("sde", "./sde", "Directory holding groups.json and items.json")
	flag.Parse()

	log := logger.New("fitforge-seed", "info")
	ctx := context.Background()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	groups, err := readGroups(filepath.Join(*sdeDir, "groups.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read groups")
	}
	if err := store.BulkCreateGroups(ctx, groups); err != nil {
		log.Fatal().Err(err).Msg("Failed to store groups")
	}
	log.Info().Int("groups", len(groups)).Msg("Seeded groups")

	known := make(map[int]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}
	types, err := readTypes(filepath.Join(*sdeDir, "items.json"), known)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read types")
	}
	if err := store.BulkCreateTypes(ctx, types); err != nil {
		log.Fatal().Err(err).Msg("Failed to store types")
	}
	log.Info().Int("types", len(types)).Msg("Seeded types")
	log.Info().Msg("Seeding complete")
}

// readGroups keeps only the groups a fit can contain.
func readGroups(path string) ([]models.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]sdeGroup
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var groups []models.Group
	for key, g := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		grp := models.Group{ID: id, Name: g.Name, Lower: g.Lower, Category: g.Category}
		if grp.CategoryName() == "" {
			continue
		}
		groups = append(groups, grp)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func readTypes(path string, groups map[int]bool) ([]models.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]sdeType
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var types []models.Type
	for key, t := range raw {
		id, err := strconv.Atoi(key)
		if err != nil || !groups[t.Group] {
			continue
		}
		types = append(types, models.Type{ID: id, Name: t.Name, Lower: t.Lower, Group: t.Group})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}
