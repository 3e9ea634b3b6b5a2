package codebase

import (
	"os"
	"time"

	"github.com/dhamidi/cnote/license"
	"github.com/dhamidi/cnote/project"
)

// FileWatcher polls the root directory and the license file and reloads
// whatever changed on disk. Files open in an editor are left alone.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	licensePath string
	licenseMod  time.Time

	// OnLicenseChange is called after the license header was reloaded.
	OnLicenseChange func()
}

func NewFileWatcher(c *Codebase, licensePath string) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		licensePath:  licensePath,
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	w.scanLicense()

	collector := &project.Collector{Matcher: w.codebase.matcher}
	currentFiles := make(map[string]bool)
	for _, path := range collector.Collect([]string{w.codebase.RootDir()}) {
		currentFiles[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if w.codebase.IsOpen(path) {
			continue
		}
		if err := w.codebase.ScanFile(path); err != nil {
			log.Debugf("reload %s: %s", path, err)
		}
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			if !w.codebase.IsOpen(path) {
				w.codebase.RemoveFile(path)
			}
		}
	}
}

func (w *FileWatcher) scanLicense() {
	if w.licensePath == "" {
		return
	}
	info, err := os.Stat(w.licensePath)
	if err != nil || !info.ModTime().After(w.licenseMod) {
		return
	}
	raw, err := os.ReadFile(w.licensePath)
	if err != nil {
		log.Warningf("read license %s: %s", w.licensePath, err)
		return
	}
	w.licenseMod = info.ModTime()
	w.codebase.SetLicense(license.BuildHeader(raw))
	log.Infof("loaded license header from %s", w.licensePath)
	if w.OnLicenseChange != nil {
		w.OnLicenseChange()
	}
}
