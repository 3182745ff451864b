package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/casaluna/reservations/internal/model"
)

// filePrefix distinguishes reservation records from any other files
// that end up in the storage directory.
const filePrefix = "reservation-"

// Repository stores each reservation as an individual JSON file in a
// directory. There is no indexing beyond the filename: identifiers are
// monotonic, so sorting filenames reproduces insertion order.
type Repository struct {
	dir string
}

// NewRepository creates a reservation repository rooted at dir,
// creating the directory on first run if it does not exist.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &Repository{dir: dir}, nil
}

// Save writes the record keyed by its identifier. A failed write is
// always reported to the caller; there is no partial-write recovery.
func (r *Repository) Save(ctx context.Context, rec model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reservation %s: %w", rec.ID, err)
	}

	path := filepath.Join(r.dir, fileName(rec.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write reservation %s: %w", rec.ID, err)
	}

	return nil
}

// ListAll reads every stored record, ordered by identifier ascending.
// An empty directory yields an empty slice, not an error.
func (r *Repository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), filePrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}

	// Identifiers are fixed-width millisecond timestamps, so filename
	// order is insertion order.
	sort.Strings(names)

	recs := make([]model.Reservation, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", name, err)
		}

		var rec model.Reservation
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", name, err)
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

func fileName(id string) string {
	return filePrefix + id + ".json"
}
