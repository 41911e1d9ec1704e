package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after a watched file was reparsed. file is nil
// when path was removed.
type ChangeFunc func(path string, file *FileInfo)

// Watcher keeps a Workspace in sync with the file system. fsnotify does
// not watch recursively, so every directory below the root is added and
// new directories are picked up as they appear.
type Watcher struct {
	workspace *Workspace
	watcher   *fsnotify.Watcher
	onChange  ChangeFunc
	stopCh    chan struct{}
	done      chan struct{}
}

func NewWatcher(w *Workspace, onChange ChangeFunc) *Watcher {
	return &Watcher{
		workspace: w,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins watching in the background until ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(watcher, w.workspace.RootDir()); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", w.workspace.RootDir(), err)
	}
	w.watcher = watcher
	log.Infof("watching %s", w.workspace.RootDir())

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	if w.watcher != nil {
		<-w.done
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create || event.Op&fsnotify.Write == fsnotify.Write:
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if event.Op&fsnotify.Create == fsnotify.Create && w.watcher != nil {
				if err := addTree(w.watcher, event.Name); err != nil {
					log.Warningf("watch %s: %s", event.Name, err)
				}
			}
			return
		}
		if !w.workspace.Match(event.Name) {
			return
		}
		if err := w.workspace.ScanFile(event.Name); err != nil {
			log.Warningf("rescan %s: %s", event.Name, err)
			return
		}
		log.Debugf("%s %s", event.Op, event.Name)
		if w.onChange != nil {
			w.onChange(event.Name, w.workspace.GetFile(event.Name))
		}

	case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
		if w.workspace.GetFile(event.Name) == nil {
			return
		}
		w.workspace.RemoveFile(event.Name)
		log.Debugf("%s %s", event.Op, event.Name)
		if w.onChange != nil {
			w.onChange(event.Name, nil)
		}
	}
}

// addTree adds root and every non-hidden directory below it to watcher.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
