package ingest

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/forestrie/go-bloomsearch/index"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before
// reloading.
const DefaultDebounce = 300 * time.Millisecond

// Watch loads dir, passes the documents to fn, then reloads and calls fn
// again after every burst of changes under dir. It returns when ctx is done,
// or with the first error from fn or from the watcher setup. Reload failures
// are logged and skipped.
func (l *Loader) Watch(ctx context.Context, dir string, debounce time.Duration, fn func([]index.Document) error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return err
	}

	docs, err := l.LoadDir(dir)
	if err != nil {
		return err
	}
	if err := fn(docs); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories are not covered by the existing watches.
				if err := addTree(watcher, event.Name); err != nil {
					l.infof("watch %s: %v", event.Name, err)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.infof("watch %s: %v", dir, err)

		case <-timer.C:
			docs, err := l.LoadDir(dir)
			if err != nil {
				l.infof("reload %s: %v", dir, err)
				continue
			}
			if err := fn(docs); err != nil {
				return err
			}
		}
	}
}

// addTree watches root and every directory below it. A root that is a plain
// file is ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}
