package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changes struct {
	mu     sync.Mutex
	events map[string]*FileInfo
}

func (c *changes) record(path string, file *FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.events == nil {
		c.events = make(map[string]*FileInfo)
	}
	c.events[path] = file
}

func (c *changes) get(path string) (*FileInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.events[path]
	return f, ok
}

func TestWatcherHandle(t *testing.T) {
	root := t.TempDir()
	w := New(root, newParser(t))
	var c changes
	watcher := NewWatcher(w, c.record)

	path := filepath.Join(root, "load.mcfunction")
	writeFile(t, path, "kill @a\n")
	watcher.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})

	file, ok := c.get(path)
	require.True(t, ok)
	require.NotNil(t, file)
	assert.Len(t, file.Lines, 1)

	other := filepath.Join(root, "notes.txt")
	writeFile(t, other, "hello\n")
	watcher.handle(fsnotify.Event{Name: other, Op: fsnotify.Create})
	_, ok = c.get(other)
	assert.False(t, ok)

	require.NoError(t, os.Remove(path))
	watcher.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	file, ok = c.get(path)
	assert.True(t, ok)
	assert.Nil(t, file)
	assert.Nil(t, w.GetFile(path))
}

func TestWatcherPicksUpChanges(t *testing.T) {
	root := t.TempDir()
	w := New(root, newParser(t))
	var c changes
	watcher := NewWatcher(w, c.record)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	path := filepath.Join(root, "tick.mcfunction")
	writeFile(t, path, "fly\n")

	assert.Eventually(t, func() bool {
		f := w.GetFile(path)
		return f != nil && len(f.Failures()) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	watcher := NewWatcher(New(t.TempDir(), newParser(t)), nil)
	watcher.Stop()
	watcher.Stop()
}

func TestWatcherStopAfterFailedStart(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	watcher := NewWatcher(New(missing, newParser(t)), nil)
	require.Error(t, watcher.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		watcher.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after failed Start")
	}
}
