// crudgen generates Schema implementations from a YAML configuration
// file. Run: crudgen -config crudgen.yaml
//
// With -watch, crudgen stays running and regenerates whenever the
// configuration file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/crud/compiler/gen"
	"github.com/syssam/crud/compiler/load"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("crudgen: ")

	configPath := flag.String("config", "crudgen.yaml", "path to the configuration file")
	watch := flag.Bool("watch", false, "regenerate when the configuration file changes")
	flag.Parse()
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "usage: crudgen [-config file] [-watch]\n")
		os.Exit(2)
	}

	ctx := context.Background()
	if err := generate(ctx, *configPath); err != nil {
		log.Fatal(err)
	}
	if !*watch {
		return
	}
	if err := watchLoop(ctx, *configPath); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, configPath string) error {
	file, err := load.FromFile(configPath)
	if err != nil {
		return err
	}
	target := file.Target
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(configPath), target)
	}
	cfg, err := gen.NewConfig(
		gen.WithPackage(file.Package),
		gen.WithTarget(target),
	)
	if err != nil {
		return err
	}
	if err := gen.Generate(ctx, cfg, file.Records); err != nil {
		return err
	}
	log.Printf("generated %d record(s) into %s", len(file.Records), target)
	return nil
}

// watchLoop regenerates on every write to the configuration file.
// Editors replace files on save, so the parent directory is watched
// and events are filtered by name.
func watchLoop(ctx context.Context, configPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(configPath)); err != nil {
		return err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	log.Printf("watching %s", configPath)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := generate(ctx, configPath); err != nil {
				log.Printf("regenerate: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}
