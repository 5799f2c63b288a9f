package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fosskers/credit/internal/credit"
)

// WriteStatistics writes compiled statistics to a JSON file atomically: the
// data lands in a temp file first, is synced, then renamed over the target.
// A crash mid-write can never leave a corrupt file behind.
func WriteStatistics(path string, stats credit.Statistics) (err error) {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp file %s: %w", tmp, err)
	}

	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmp)
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err = enc.Encode(stats); err != nil {
		return fmt.Errorf("writing JSON to %s: %w", tmp, err)
	}

	if err = file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	return nil
}

// ReadStatistics loads previously saved statistics, enabling the
// compute-once, render-later workflow.
func ReadStatistics(path string) (credit.Statistics, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return credit.Statistics{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var stats credit.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return credit.Statistics{}, fmt.Errorf("%s doesn't contain valid statistics: %w", path, err)
	}

	return stats, nil
}
