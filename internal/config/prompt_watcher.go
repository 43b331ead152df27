package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jaiwin14/JobnexusAI/internal/errors"
)

// PromptWatcher watches configured prompt files and hot-reloads their content
// when they change. Editors and config management tools often replace files
// atomically, so the parent directories are watched as well.
type PromptWatcher struct {
	mu sync.RWMutex

	config *Config
	files  []string

	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger *errors.Logger

	running bool
}

// NewPromptWatcher creates a watcher over every prompt file the configuration
// references. Returns nil if no prompt files are configured.
func NewPromptWatcher(cfg *Config, debounceDelay time.Duration, logger *errors.Logger) *PromptWatcher {
	files := cfg.PromptFilePaths()
	if len(files) == 0 {
		return nil
	}

	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &PromptWatcher{
		config:        cfg,
		files:         files,
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}
}

// Start begins watching prompt files for changes
func (pw *PromptWatcher) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("prompt watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	pw.fsWatcher = watcher

	if err := pw.updateModTimes(); err != nil {
		pw.cleanupWatcher()
		return fmt.Errorf("failed to get initial file modification times: %w", err)
	}

	for _, file := range pw.files {
		if err := pw.addFileToWatcher(file); err != nil && pw.logger != nil {
			pw.logger.Warn("Failed to watch prompt file", "file", file, "error", err)
		}
	}

	pw.running = true
	go pw.watchLoop()

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher started",
			"files", pw.files,
			"debounce_delay", pw.debounceDelay)
	}
	return nil
}

// Stop stops the prompt file watcher
func (pw *PromptWatcher) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	close(pw.stopChan)

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	if pw.fsWatcher != nil {
		if err := pw.fsWatcher.Close(); err != nil {
			if pw.logger != nil {
				pw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	pw.running = false

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher stopped")
	}

	return nil
}

func (pw *PromptWatcher) cleanupWatcher() {
	if pw.fsWatcher != nil {
		if closeErr := pw.fsWatcher.Close(); closeErr != nil && pw.logger != nil {
			pw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// addFileToWatcher adds a file and its directory to the file system watcher
func (pw *PromptWatcher) addFileToWatcher(file string) error {
	if err := pw.fsWatcher.Add(file); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := pw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
		} else {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(file)
	if err := pw.fsWatcher.Add(dir); err != nil {
		if pw.logger != nil {
			pw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// updateModTimes updates the stored modification times for all watched files
func (pw *PromptWatcher) updateModTimes() error {
	for _, file := range pw.files {
		if stat, err := os.Stat(file); err == nil {
			pw.lastModTime[file] = stat.ModTime()
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat file %s: %w", file, err)
		}
	}
	return nil
}

// hasFileChanged checks if a file has been modified since last check
func (pw *PromptWatcher) hasFileChanged(file string) bool {
	stat, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			if _, exists := pw.lastModTime[file]; exists {
				delete(pw.lastModTime, file)
				return true
			}
		}
		return false
	}

	lastMod, exists := pw.lastModTime[file]
	if !exists || stat.ModTime().After(lastMod) {
		pw.lastModTime[file] = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (pw *PromptWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-pw.fsWatcher.Events:
			if !ok {
				return
			}

			if pw.shouldProcessEvent(event) {
				pw.scheduleReload()
			}

		case err, ok := <-pw.fsWatcher.Errors:
			if !ok {
				return
			}
			if pw.logger != nil {
				pw.logger.LogError(err, "File watcher error")
			}

		case <-pw.reloadChan:
			// Debounced reload trigger
			if slices.ContainsFunc(pw.files, pw.hasFileChanged) {
				if pw.logger != nil {
					pw.logger.Info("Prompt files changed, reloading")
				}
				if err := pw.config.ReloadPromptsFromFiles(); err != nil && pw.logger != nil {
					pw.logger.LogError(err, "Prompt reload failed, keeping previous prompts")
				}
			}

		case <-pw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (pw *PromptWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFile := slices.ContainsFunc(pw.files, func(file string) bool {
		return event.Name == file || filepath.Base(event.Name) == filepath.Base(file)
	})
	if !isWatchedFile {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (pw *PromptWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	pw.debounceTimer = time.AfterFunc(pw.debounceDelay, func() {
		select {
		case pw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (pw *PromptWatcher) IsRunning() bool {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.running
}

// WatchedFiles returns the list of files being watched
func (pw *PromptWatcher) WatchedFiles() []string {
	return slices.Clone(pw.files)
}
