package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/crud/compiler/load"
)

// Generate resolves the record definitions and writes one generated
// file per record into the config's target directory. Files are
// rendered and written in parallel, bounded by Config.Workers.
func Generate(ctx context.Context, cfg *Config, records []*load.Record) error {
	if cfg == nil || cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if cfg.Package == "" {
		return NewConfigError("Package", nil, "missing package in config")
	}
	types, err := BuildTypes(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return fmt.Errorf("crudgen: create target directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		eg.SetLimit(cfg.Workers)
	}
	for _, t := range types {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return writeType(cfg, t)
			}
		})
	}
	return eg.Wait()
}

// writeType renders and writes the file for one type. Rendering goes
// through jennifer, which also formats the output, so a generation bug
// that produces invalid Go fails here rather than at the user's next
// build.
func writeType(cfg *Config, t *Type) error {
	f := emit(cfg, t)
	target := filepath.Join(cfg.Target, t.FileName())
	if err := f.Save(target); err != nil {
		return fmt.Errorf("crudgen: render %s: %w", target, err)
	}
	return nil
}
