package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

var shaderExtensions = map[string]bool{".vert": true, ".frag": true, ".glsl": true}

// ShaderWatcher signals Reload when a shader file in the watched
// directory changes. It never touches GL state; the render loop drains
// Reload between frames.
type ShaderWatcher struct {
	Reload  chan string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewShaderWatcher(dir string) (*ShaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	sw := &ShaderWatcher{
		// one pending reload covers any number of changes
		Reload:  make(chan string, 1),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !shaderExtensions[filepath.Ext(event.Name)] {
				continue
			}
			select {
			case sw.Reload <- event.Name:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v\n", err)
		}
	}
}

// Pending reports whether a reload was requested since the last call.
func (sw *ShaderWatcher) Pending() (string, bool) {
	if sw == nil {
		return "", false
	}
	select {
	case name := <-sw.Reload:
		return name, true
	default:
		return "", false
	}
}

func (sw *ShaderWatcher) Close() error {
	if sw == nil {
		return nil
	}
	close(sw.done)
	return sw.watcher.Close()
}
