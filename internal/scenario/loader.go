package scenario

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-quest/internal/scenario/formats"
)

// Loader handles loading scenarios from a directory tree.
type Loader struct {
	Root   string
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root), logger: log.New(io.Discard)}
}

// NewFSLoader creates a loader over an arbitrary filesystem.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{Root: ".", fsys: fsys, logger: log.New(io.Discard)}
}

// SetLogger sets the logger used to report skipped files.
func (l *Loader) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// LoadAll recursively scans and loads all scenario files.
// Invalid files are skipped. The result is sorted by order, then ID.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		sc, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("skipping scenario file", "path", path, "error", err)
			return nil
		}

		scenarios = append(scenarios, sc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: walking %s: %w", l.Root, err)
	}

	sortScenarios(scenarios)
	return scenarios, nil
}

// LoadFile loads a single scenario file relative to the loader root.
func (l *Loader) LoadFile(path string) (Scenario, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: reading %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: parsing %s: %w", path, err)
	}

	filePath := ""
	if l.Root != "." {
		filePath = filepath.Join(l.Root, path)
	}

	return Scenario{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Order:    parsed.Order,
		Hint:     parsed.Hint,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: filePath,
	}, nil
}

// LoadPath loads a single scenario file from anywhere on disk.
func LoadPath(path string) (Scenario, error) {
	return NewLoader(filepath.Dir(path)).LoadFile(filepath.Base(path))
}

func sortScenarios(scenarios []Scenario) {
	sort.SliceStable(scenarios, func(i, j int) bool {
		if scenarios[i].Order != scenarios[j].Order {
			return scenarios[i].Order < scenarios[j].Order
		}
		return scenarios[i].ID < scenarios[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Scenario, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Scenario{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
