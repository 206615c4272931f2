// Package watch wraps fsnotify for the compiler's watch mode: the CLI
// recompiles a source file whenever the watcher reports a write to it.
package watch

import (
	"github.com/fsnotify/fsnotify"
)

// WatchOp is a bitmask of filesystem operations observed on a path.
type WatchOp uint32

// The watchable operations.
const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is one filesystem notification.
type Event struct {
	Path string
	Op   WatchOp
}

// Watcher delivers OS-native filesystem notifications for added paths.
type Watcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error
}

// New creates a Watcher and starts its delivery loop.
func New() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{w: w, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.evC)
	defer close(fw.erC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			var op WatchOp
			if ev.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}
			if ev.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}
			if ev.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}
			if ev.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}
			if ev.Op&fsnotify.Chmod != 0 {
				op |= OpChmod
			}
			fw.evC <- Event{Path: ev.Name, Op: op}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.erC <- err
		}
	}
}

// Events returns the notification channel.
func (fw *Watcher) Events() <-chan Event { return fw.evC }

// Errors returns the watcher's error channel.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Add starts watching a path.
func (fw *Watcher) Add(name string) error { return fw.w.Add(name) }

// Remove stops watching a path.
func (fw *Watcher) Remove(name string) error { return fw.w.Remove(name) }

// Close shuts the watcher down; the channels drain and close.
func (fw *Watcher) Close() error { return fw.w.Close() }
