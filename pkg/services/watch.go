package services

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"blog-store/pkg/config"

	"github.com/fsnotify/fsnotify"
)

// WatchContent watches the content tree and invalidates the article cache
// shortly after files change. The caller owns the returned watcher.
func WatchContent() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	go func() {
		// Debounce: editors fire several events per save.
		var timer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

					// New subdirectories are not watched automatically.
					if event.Has(fsnotify.Create) && isDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							log.Printf("Error watching new directory %s: %v", event.Name, err)
						}
					}

					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(config.WatchDebounce, InvalidateCache)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}()

	err = filepath.WalkDir(config.ContentPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if watchErr := watcher.Add(path); watchErr != nil {
				log.Printf("Failed to watch %s: %v", path, watchErr)
			}
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return watcher, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
