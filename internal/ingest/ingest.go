// Package ingest turns zkillboard killmail records into stored fits.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
)

// Result is a processed killmail ready to store
type Result struct {
	Fit models.StoredFit
	// Slots is the category each fitted type was seen in.
	Slots map[int]models.Slot
}

// Process extracts the fitted items of a killmail. ok is false when the
// hull type is unknown or nothing is fitted in a low slot.
func Process(c *models.Catalog, km models.Killmail) (res Result, ok bool) {
	ship := km.Killmail.Victim.ShipTypeID
	if _, _, known := c.Type(ship); !known {
		return res, false
	}
	res.Fit = models.StoredFit{
		Killmail: km.KillID,
		Ship:     ship,
		Cost:     int64(km.Zkb.FittedValue),
		Items:    []models.RawItem{},
	}
	res.Slots = map[int]models.Slot{}
	query := map[int]struct{}{ship: {}}

	hasLo := false
	for _, item := range km.Killmail.Victim.Items {
		slot, _, fitted := fit.MapFlag(item.Flag)
		if !fitted {
			continue
		}
		// A lo-range flag counts even when its type is unknown.
		if slot == models.SlotLo {
			hasLo = true
		}
		if _, _, known := c.Type(item.ItemTypeID); !known {
			continue
		}
		res.Fit.Items = append(res.Fit.Items, models.RawItem{ItemTypeID: item.ItemTypeID, Flag: item.Flag})
		if _, seen := res.Slots[item.ItemTypeID]; !seen {
			res.Slots[item.ItemTypeID] = slot
		}
		query[item.ItemTypeID] = struct{}{}
	}
	if !hasLo {
		return res, false
	}

	res.Fit.QueryItems = make([]int, 0, len(query))
	for id := range query {
		res.Fit.QueryItems = append(res.Fit.QueryItems, id)
	}
	sort.Ints(res.Fit.QueryItems)
	return res, true
}

// Sink receives processed fits
type Sink interface {
	CreateFit(ctx context.Context, f *models.StoredFit, slots map[int]models.Slot) error
}

// Stats counts the outcome of a Reader run
type Stats struct {
	Read     int
	Stored   int
	Skipped  int
	Failures int
}

// Reader reads newline-delimited killmail JSON and stores every usable fit.
type Reader struct {
	Catalog *models.Catalog
	Sink    Sink
	Log     zerolog.Logger
}

// maxLine bounds a single killmail record.
const maxLine = 4 << 20

// Run consumes r until EOF. Undecodable or oversized lines are counted and
// logged, not fatal; a sink or read error stops the run.
func (rd *Reader) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var st Stats
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		line, readErr := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			st.Read++
			if err := rd.record(ctx, &st, line); err != nil {
				return st, err
			}
		}
		if readErr == io.EOF {
			return st, nil
		}
		if readErr != nil {
			return st, fmt.Errorf("read killmails: %w", readErr)
		}
	}
}

func (rd *Reader) record(ctx context.Context, st *Stats, line []byte) error {
	if len(line) > maxLine {
		st.Failures++
		rd.Log.Warn().Int("line", st.Read).Int("bytes", len(line)).Msg("skipping oversized killmail")
		return nil
	}
	var km models.Killmail
	if err := json.Unmarshal(line, &km); err != nil {
		st.Failures++
		rd.Log.Warn().Err(err).Int("line", st.Read).Msg("skipping undecodable killmail")
		return nil
	}
	res, ok := Process(rd.Catalog, km)
	if !ok {
		st.Skipped++
		return nil
	}
	if err := rd.Sink.CreateFit(ctx, &res.Fit, res.Slots); err != nil {
		return fmt.Errorf("store killmail %d: %w", km.KillID, err)
	}
	st.Stored++
	return nil
}
