package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/detectorsearch/catalog"
)

// definitionFile is the on-disk shape of one detector definitions file.
type definitionFile struct {
	Detectors []catalog.Detector `yaml:"detectors"`
}

// Loader reads detector definitions from YAML files.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader. A nil logger discards logs.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// LoadFile parses one definitions file. Detectors without an id are
// assigned a random one.
func (l *Loader) LoadFile(path string) ([]catalog.Detector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions %s: %w", path, err)
	}

	var def definitionFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definitions %s: %w", path, err)
	}

	for i := range def.Detectors {
		if def.Detectors[i].ID == "" {
			def.Detectors[i].ID = uuid.NewString()
		}
		if err := def.Detectors[i].Validate(); err != nil {
			return nil, fmt.Errorf("definitions %s: %w", path, err)
		}
	}

	return def.Detectors, nil
}

// LoadDirectory indexes every *.yaml and *.yml definitions file in dir into
// the catalog and returns the number of detectors indexed.
func (l *Loader) LoadDirectory(dir string, cat *catalog.Catalog) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read definitions directory %s: %w", dir, err)
	}

	indexed := 0
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		detectors, err := l.LoadFile(path)
		if err != nil {
			return indexed, err
		}
		if err := cat.IndexBatch(detectors); err != nil {
			return indexed, err
		}

		l.logger.Info("indexed detector definitions",
			slog.String("path", path),
			slog.Int("detectors", len(detectors)))
		indexed += len(detectors)
	}

	return indexed, nil
}

func isDefinitionFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
