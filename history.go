package readln

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HistoryConfig holds all history-related configuration.
//
// History is an append-only, in-memory log of submitted lines; persistence
// to a file is optional. The File path supports multiple formats:
// - Empty string: memory-only history (no persistence)
// - Absolute path: "/home/user/.app_history"
// - Home directory: "~/.app_history"
// - Relative path: "./app_history" (converted to absolute)
// - XDG compliant: use DefaultHistoryFile() for "~/.config/readln/history"
type HistoryConfig struct {
	Enabled     bool   // Enable/disable history functionality
	MaxEntries  int    // Maximum number of entries to keep in memory (default: 1000)
	File        string // File path for history persistence (empty = memory only)
	MaxFileSize int64  // Maximum file size in bytes before rotation (default: 1MB)
	MaxBackups  int    // Maximum number of backup files to keep (default: 3)
}

// DefaultHistoryConfig returns a memory-only history configuration.
func DefaultHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Enabled:     true,
		MaxEntries:  1000,
		File:        "",
		MaxFileSize: 1024 * 1024, // 1MB
		MaxBackups:  3,
	}
}

// DefaultHistoryFile returns the default history file path following the XDG
// Base Directory Specification: $XDG_CONFIG_HOME/readln/history, or
// ~/.config/readln/history when XDG_CONFIG_HOME is unset.
func DefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "readln", "history")
}

// HistoryManager owns the stored history log and its persistence.
//
// Entries are appended on submit and never mutated in place; recall editing
// happens on shadow copies inside the navigator, so the log only ever grows
// (up to MaxEntries, which trims from the oldest end). A resubmitted line
// that is textually identical to an existing entry is still appended as a
// new, newest entry.
type HistoryManager struct {
	config  *HistoryConfig
	entries []string
}

// NewHistoryManager creates a history manager with the given configuration.
// A nil config selects the defaults.
func NewHistoryManager(config *HistoryConfig) *HistoryManager {
	if config == nil {
		config = DefaultHistoryConfig()
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 1024 * 1024
	}
	if config.MaxBackups < 0 {
		config.MaxBackups = 3
	}
	if config.File != "" {
		if absPath, err := expandHistoryPath(config.File); err == nil {
			config.File = absPath
		}
	}
	return &HistoryManager{
		config:  config,
		entries: make([]string, 0),
	}
}

// IsEnabled returns whether history functionality is enabled.
func (hm *HistoryManager) IsEnabled() bool {
	return hm.config.Enabled
}

// Append adds a line as the newest entry. Empty lines are ignored. Unlike
// shell histories there is no duplicate suppression: recalling an entry,
// editing it, and submitting always yields a brand-new entry, even when the
// text ends up identical to an existing one.
func (hm *HistoryManager) Append(entry string) {
	if !hm.config.Enabled || entry == "" {
		return
	}
	hm.entries = append(hm.entries, entry)
	hm.trim()
}

// Entries returns a copy of the current history, oldest first.
func (hm *HistoryManager) Entries() []string {
	if !hm.config.Enabled {
		return []string{}
	}
	return append([]string{}, hm.entries...)
}

// SetEntries replaces the current history.
func (hm *HistoryManager) SetEntries(entries []string) {
	if !hm.config.Enabled {
		return
	}
	hm.entries = append([]string{}, entries...)
	hm.trim()
}

// Clear removes all entries.
func (hm *HistoryManager) Clear() {
	if !hm.config.Enabled {
		return
	}
	hm.entries = []string{}
}

// Len returns the number of stored entries.
func (hm *HistoryManager) Len() int {
	if !hm.config.Enabled {
		return 0
	}
	return len(hm.entries)
}

// trim drops the oldest entries when the log exceeds MaxEntries.
func (hm *HistoryManager) trim() {
	maxEntries := hm.config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if len(hm.entries) > maxEntries {
		hm.entries = hm.entries[len(hm.entries)-maxEntries:]
	}
}

// Load reads history from the configured file. A missing file is not an
// error; it simply means no history has been saved yet.
func (hm *HistoryManager) Load() error {
	if !hm.config.Enabled || hm.config.File == "" {
		return nil
	}

	file, err := os.Open(hm.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			hm.entries = append(hm.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	hm.trim()
	return nil
}

// Save writes the current history to the configured file, rotating it first
// when it has grown past MaxFileSize.
func (hm *HistoryManager) Save() error {
	if !hm.config.Enabled || hm.config.File == "" {
		return nil
	}

	if err := hm.rotateIfNeeded(); err != nil {
		return fmt.Errorf("failed to rotate history file: %w", err)
	}

	dir := filepath.Dir(hm.config.File)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.Create(hm.config.File)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	for _, entry := range hm.entries {
		if _, err := fmt.Fprintln(file, entry); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return nil
}

// rotateIfNeeded checks the on-disk size and rotates when it exceeds the
// configured maximum.
func (hm *HistoryManager) rotateIfNeeded() error {
	if hm.config.File == "" {
		return nil
	}

	info, err := os.Stat(hm.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < hm.config.MaxFileSize {
		return nil
	}
	return hm.rotate()
}

// rotate shifts numbered backups up and moves the current file to ".1", then
// rewrites the live file with only the most recent entries.
func (hm *HistoryManager) rotate() error {
	if hm.config.MaxBackups <= 0 {
		return os.Truncate(hm.config.File, 0)
	}

	oldest := hm.config.File + "." + strconv.Itoa(hm.config.MaxBackups)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}

	for i := hm.config.MaxBackups - 1; i >= 1; i-- {
		oldFile := hm.config.File + "." + strconv.Itoa(i)
		newFile := hm.config.File + "." + strconv.Itoa(i+1)
		if _, err := os.Stat(oldFile); err == nil {
			if err := os.Rename(oldFile, newFile); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}

	backup := hm.config.File + ".1"
	if err := os.Rename(hm.config.File, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := hm.writeRotated(); err != nil {
		return fmt.Errorf("failed to create rotated file: %w", err)
	}
	return nil
}

// writeRotated rewrites the live history file with roughly the newer half of
// the entries, so the file does not rotate again immediately.
func (hm *HistoryManager) writeRotated() error {
	keep := len(hm.entries) / 2
	if keep < 100 {
		keep = len(hm.entries)
	}
	start := len(hm.entries) - keep
	if start < 0 {
		start = 0
	}

	file, err := os.Create(hm.config.File)
	if err != nil {
		return err
	}
	defer file.Close()

	for i := start; i < len(hm.entries); i++ {
		if _, err := fmt.Fprintln(file, hm.entries[i]); err != nil {
			return err
		}
	}

	hm.entries = hm.entries[start:]
	return nil
}

// expandHistoryPath expands "~" and converts the path to absolute.
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = home
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return absPath, nil
}
