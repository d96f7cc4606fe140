package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"chosenoffset.com/fieldofview/internal/game"
)

// watchScene reloads the scene into g whenever the file is written. The
// directory is watched rather than the file so editors that replace the
// file on save are picked up too.
func watchScene(path string, g *game.Game) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				cfg, err := loadScene(path)
				if err != nil {
					log.Printf("Scene reload failed: %v", err)
					continue
				}
				g.Reload(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Scene watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
