// Package configwatcher calls back when the configuration file changes, so
// settings like the regional unit convention can be applied without a
// restart
package configwatcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	cclog "github.com/ClusterCockpit/cc-unit-engine/internal/ccLogger"
)

type ConfigWatcher struct {
	name     string
	file     string
	watcher  *fsnotify.Watcher
	onChange func(file string)
	done     chan bool
	wg       sync.WaitGroup
}

// New watches file. The directory is watched instead of the file itself,
// since editors often replace the file on save.
func New(file string, onChange func(file string)) (*ConfigWatcher, error) {
	w := &ConfigWatcher{
		name:     "ConfigWatcher",
		file:     filepath.Clean(file),
		onChange: onChange,
		done:     make(chan bool),
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.file)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.file), err)
	}
	w.watcher = watcher
	return w, nil
}

func (w *ConfigWatcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				cclog.ComponentDebug(w.name, "DONE")
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.file {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					cclog.ComponentDebug(w.name, "Changed:", event.Name, event.Op.String())
					w.onChange(w.file)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				cclog.ComponentError(w.name, err.Error())
			}
		}
	}()
	cclog.ComponentDebug(w.name, "STARTED", w.file)
}

func (w *ConfigWatcher) Close() {
	cclog.ComponentDebug(w.name, "CLOSE")
	close(w.done)
	w.wg.Wait()
	w.watcher.Close()
}
