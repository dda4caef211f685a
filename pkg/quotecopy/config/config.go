// Package config loads config.toml for the quotecopy tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"github.com/xuri/excelize/v2"
)

// FileName is the config file looked up next to the executable.
const FileName = "config.toml"

// Environment overrides.
const (
	EnvNumberingPath = "QUOTECOPY_NUMBERING_PATH"
	EnvExportEngine  = "QUOTECOPY_EXPORT_ENGINE"
	EnvLogLevel      = "QUOTECOPY_LOG_LEVEL"
)

// Export engines.
const (
	EngineAuto   = "auto"
	EngineOffice = "office"
	EngineNative = "native"
	EngineNone   = "none"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Log       logger.Config   `toml:"log"`
	Numbering NumberingConfig `toml:"numbering"`
	Layout    models.Layout   `toml:"layout"`
	Naming    NamingConfig    `toml:"naming"`
	Export    ExportConfig    `toml:"export"`
	Assets    AssetsConfig    `toml:"assets"`
}

// NumberingConfig locates the persisted numbering state.
type NumberingConfig struct {
	// Path of the JSON file; relative paths are resolved against the
	// directory holding config.toml.
	Path string `toml:"path"`
}

// NamingConfig holds the label and output-name expressions.
type NamingConfig struct {
	Label  string `toml:"label"`
	Output string `toml:"output"`
}

// ExportConfig selects how the PDF is produced.
type ExportConfig struct {
	Engine         string `toml:"engine"`
	OfficeBinary   string `toml:"office_binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AssetsConfig controls the media archive fallback.
type AssetsConfig struct {
	Fallback   bool     `toml:"fallback"`
	ScratchDir string   `toml:"scratch_dir"`
	Extensions []string `toml:"extensions"`
}

// LoadInfo describes where the configuration came from.
type LoadInfo struct {
	Path  string
	Found bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Log: logger.Config{
			Level:  "info",
			Format: "console",
		},
		Numbering: NumberingConfig{
			Path: "config.json",
		},
		Layout: models.DefaultLayout(),
		Export: ExportConfig{
			Engine:         EngineAuto,
			TimeoutSeconds: 120,
		},
		Assets: AssetsConfig{
			Fallback:   true,
			Extensions: append([]string(nil), parser.DefaultMediaExtensions...),
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath returns config.toml next to the executable, or in the
// working directory when the executable cannot be located.
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadWithInfo reads path (DefaultPath when empty) over the defaults and
// applies environment overrides. A missing file yields the defaults.
func LoadWithInfo(path string) (*AppConfig, LoadInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Found = true
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, info, err
	}

	applyEnv(cfg)

	if cfg.Numbering.Path != "" && !filepath.IsAbs(cfg.Numbering.Path) {
		cfg.Numbering.Path = filepath.Join(filepath.Dir(path), cfg.Numbering.Path)
	}
	return cfg, info, nil
}

// Load is LoadWithInfo without the metadata.
func Load(path string) (*AppConfig, error) {
	cfg, _, err := LoadWithInfo(path)
	return cfg, err
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvNumberingPath); v != "" {
		cfg.Numbering.Path = v
	}
	if v := os.Getenv(EnvExportEngine); v != "" {
		cfg.Export.Engine = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the layout addresses and the export settings.
func (c *AppConfig) Validate() error {
	l := c.Layout
	cells := map[string]string{
		"label_cell": l.LabelCell,
		"total_cell": l.TotalCell,
	}
	for i, cell := range l.FixedCells {
		cells["fixed_cells["+strconv.Itoa(i)+"]"] = cell
	}
	for i, cell := range l.AdditionalCells {
		cells["additional_cells["+strconv.Itoa(i)+"]"] = cell
	}
	for key, cell := range cells {
		if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
			return fmt.Errorf("layout.%s: %w", key, err)
		}
	}
	for i, col := range l.ItemColumns {
		if _, err := excelize.ColumnNameToNumber(col); err != nil {
			return fmt.Errorf("layout.item_columns[%d]: %w", i, err)
		}
	}
	if l.ItemFirstRow < 1 || l.ItemCount < 1 {
		return fmt.Errorf("layout: item_first_row and item_count must be positive")
	}
	if l.PrintArea != "" {
		if _, err := parser.ParseRange(l.PrintArea); err != nil {
			return fmt.Errorf("layout.print_area: %w", err)
		}
	}

	switch c.Export.Engine {
	case EngineAuto, EngineOffice, EngineNative, EngineNone:
	default:
		return fmt.Errorf("export.engine: unknown engine %q", c.Export.Engine)
	}
	if c.Export.TimeoutSeconds <= 0 {
		return fmt.Errorf("export.timeout_seconds must be positive")
	}
	if c.Numbering.Path == "" {
		return fmt.Errorf("numbering.path is empty")
	}
	return nil
}
