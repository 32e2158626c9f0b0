package ember

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher re-parses a config file whenever it changes on disk and
// delivers each valid result on Configs. Invalid edits are logged and
// skipped, so a half-saved file never tears down a running scene.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	configs chan *SystemConfig
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// WatchConfig starts watching path. The directory is watched rather than the
// file so editors that save by rename are picked up.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		configs: make(chan *SystemConfig, 1),
		done:    make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.loop()
	return cw, nil
}

// Configs delivers freshly parsed configs. Only the newest pending config is
// kept; the channel is closed by Close.
func (cw *ConfigWatcher) Configs() <-chan *SystemConfig {
	return cw.configs
}

// Close stops watching and closes the Configs channel.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
		cw.wg.Wait()
		close(cw.configs)
	})
	return err
}

func (cw *ConfigWatcher) loop() {
	defer cw.wg.Done()
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				log.Printf("ember: ignoring config change: %v", err)
				continue
			}
			cw.publish(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ember: config watcher error: %v", err)
		}
	}
}

// publish replaces any undelivered config with cfg.
func (cw *ConfigWatcher) publish(cfg *SystemConfig) {
	for {
		select {
		case cw.configs <- cfg:
			return
		default:
		}
		select {
		case <-cw.configs:
		default:
		}
	}
}
