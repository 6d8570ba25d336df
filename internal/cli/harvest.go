package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/coinpulse/newsharvest/pkg/dates"
	"github.com/coinpulse/newsharvest/pkg/export"
	"github.com/coinpulse/newsharvest/pkg/publishers"
	"github.com/coinpulse/newsharvest/pkg/seenstore"
	"github.com/coinpulse/newsharvest/pkg/sources"
)

// Default export file names, matching the historical layout.
const (
	gdeltJSONName       = "gdelt_data.json"
	gdeltCSVName        = "gdelt_data.csv"
	cryptoPanicJSONName = "cryptopanic_data.json"
	cryptoPanicCSVName  = "cryptopanic_data.csv"
	cleanedJSONName     = "gdelt_data_cleaned.json"
	cleanedCSVName      = "gdelt_data_cleaned.csv"

	defaultSeenDBName = "newsharvest_seen.db"
)

func outputPath(name string) string {
	return filepath.Join(cfg.OutputDir, name)
}

// openSeenStore opens the cross-run dedup ledger when --skip-seen was
// requested. Returns nil when the feature is off.
func openSeenStore(skipSeen bool) (*seenstore.Store, error) {
	if !skipSeen {
		return nil, nil
	}

	path := cfg.SeenDB
	if path == "" {
		path = outputPath(defaultSeenDBName)
	}
	return seenstore.Open(path)
}

// filterSeen drops records whose key was exported by an earlier run
// and returns the survivors together with their keys. The keys are
// marked separately, after the export succeeds, so a failed export
// does not bury records the next --skip-seen run would need.
func filterSeen[T any](store *seenstore.Store, records []T, keyOf func(T) string) ([]T, []string, error) {
	if store == nil {
		return records, nil, nil
	}

	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = keyOf(r)
	}

	fresh, err := store.FilterNew(keys)
	if err != nil {
		return nil, nil, err
	}
	freshSet := make(map[string]struct{}, len(fresh))
	for _, k := range fresh {
		freshSet[k] = struct{}{}
	}

	out := make([]T, 0, len(fresh))
	for i, r := range records {
		if _, ok := freshSet[keys[i]]; ok {
			out = append(out, r)
		}
	}
	return out, fresh, nil
}

// markSeen records exported keys in the dedup ledger.
func markSeen(store *seenstore.Store, keys []string) error {
	if store == nil || len(keys) == 0 {
		return nil
	}
	return store.Mark(keys)
}

// publishHarvest announces the finished run to the configured sinks,
// if a publishers file is set. Sink failures are logged, never fatal.
func publishHarvest(ctx context.Context, source string, window sources.Window, records int, jsonPath, csvPath string) {
	if cfg.PublishersFile == "" {
		return
	}

	cfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		log.ErrorObj("publishers file rejected", "publishers_config_error", map[string]any{
			"path":  cfg.PublishersFile,
			"error": err.Error(),
		})
		return
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), publishers.EnabledOnly(cfgs), log)
	if err != nil {
		log.ErrorObj("publisher setup failed", "publishers_build_error", map[string]any{
			"error": err.Error(),
		})
		return
	}

	evt := publishers.Event{
		RunID:       uuid.NewString(),
		Source:      source,
		WindowStart: dates.Day(window.Start),
		WindowEnd:   dates.Day(window.End),
		Records:     records,
		JSONPath:    jsonPath,
		CSVPath:     csvPath,
		HarvestedAt: time.Now().UTC(),
	}
	delivered := publishers.PublishAll(ctx, pubs, evt, log)
	log.InfoObj("harvest event published", "publish_done", map[string]any{
		"run_id":    evt.RunID,
		"delivered": delivered,
		"sinks":     len(pubs),
	})
}

// exportRun writes the JSON list and the deduplicated CSV projection.
// Returns the deduplicated row count.
func exportRun(jsonPath, csvPath string, records any, table export.Table) (int, error) {
	if err := export.WriteJSON(jsonPath, records); err != nil {
		return 0, err
	}
	return export.WriteCSV(csvPath, table)
}
