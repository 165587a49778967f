package firmware

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sigreer/biosctl/internal/logging"
)

// Scan is the result of one catalog walk: the entries that could be
// built, in directory listing order, and why the others were left out.
type Scan[T any] struct {
	Items   []T
	Skipped *multierror.Error
}

// SkippedCount returns the number of entries left out of Items.
func (s Scan[T]) SkippedCount() int {
	if s.Skipped == nil {
		return 0
	}
	return len(s.Skipped.Errors)
}

type entryResult[T any] struct {
	name string
	item T
	ok   bool
	err  error
}

// walk builds one T per subdirectory of dir. Plain files are ignored.
// A failing build skips that entry only; the walk itself fails only when
// dir cannot be listed.
func walk[T any](d *Device, catalog, kind string, build func(name, path string) (T, error)) (Scan[T], error) {
	dir := filepath.Join(d.path, catalog)
	log.Debug().Str("path", dir).Msgf("reading device %s path", catalog)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Scan[T]{}, &EnumerationError{Catalog: catalog, Device: d.path, Err: err}
	}

	// one slot per entry so the output never depends on completion order
	results := make([]entryResult[T], len(entries))

	workers := d.workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		i, entry := i, entry // per-iteration copies for go < 1.22
		g.Go(func() error {
			name := entry.Name()

			item, err := build(name, filepath.Join(dir, name))
			if err != nil {
				results[i] = entryResult[T]{name: name, err: errors.WithMessagef(err, "%s '%s'", kind, name)}
				return nil
			}

			results[i] = entryResult[T]{name: name, item: item, ok: true}
			return nil
		})
	}
	_ = g.Wait()

	var scan Scan[T]
	for _, r := range results {
		switch {
		case r.ok:
			scan.Items = append(scan.Items, r.item)
		case r.err != nil:
			// skips are logged in listing order, after all workers are done
			logger := log.With().Str(kind, r.name).Logger()
			logger.Warn().Msgf("skipping %s with error: %s", kind, r.err)
			logging.LogCausesTo(logger, r.err)
			scan.Skipped = multierror.Append(scan.Skipped, r.err)
		}
	}

	return scan, nil
}
