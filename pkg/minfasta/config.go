// 14 Oct 2026

package minfasta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/komkom/toml"

	"github.com/andrew-torda/minfasta/pkg/pgmatrix"
	"github.com/andrew-torda/minfasta/pkg/seq"
)

// Config holds what can be changed from a config file. Anything not in
// the file keeps its default.
type Config struct {
	GroupColumn    string `yaml:"group_column" json:"group_column"`
	EvidenceColumn string `yaml:"evidence_column" json:"evidence_column"`
	SampleSuffix   string `yaml:"sample_suffix" json:"sample_suffix"`
	LineWidth      int    `yaml:"line_width" json:"line_width"`
	MaxListMissing int    `yaml:"max_list_missing" json:"max_list_missing"` // list missing IDs if there are no more than this
}

// DefaultConfig suits DIA-NN output.
func DefaultConfig() Config {
	return Config{
		GroupColumn:    pgmatrix.DefaultColumns.Group,
		EvidenceColumn: pgmatrix.DefaultColumns.Evidence,
		SampleSuffix:   pgmatrix.DefaultColumns.SampleSuffix,
		LineWidth:      seq.DefaultWidth,
		MaxListMissing: 10,
	}
}

// Columns is the part of the config the matrix reader wants.
func (c Config) Columns() pgmatrix.Columns {
	return pgmatrix.Columns{
		Group:        c.GroupColumn,
		Evidence:     c.EvidenceColumn,
		SampleSuffix: c.SampleSuffix,
	}
}

func (c Config) check() error {
	var errs []error
	if c.GroupColumn == "" || c.EvidenceColumn == "" {
		errs = append(errs, errors.New("column names cannot be empty"))
	}
	if c.SampleSuffix == "" {
		errs = append(errs, errors.New("sample_suffix cannot be empty"))
	}
	if c.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("line_width must be positive, not %d", c.LineWidth))
	}
	if c.MaxListMissing < 0 {
		errs = append(errs, fmt.Errorf("max_list_missing cannot be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a yaml or toml file, chosen by the file's extension.
// An empty fname gives the defaults.
func LoadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()
	if fname == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(fname)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = json.NewDecoder(toml.New(bytes.NewReader(b))).Decode(&cfg)
	default:
		return cfg, fmt.Errorf("config %s: do not know format %q, use .yaml or .toml", fname, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", fname, err)
	}
	if err := cfg.check(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", fname, err)
	}
	return cfg, nil
}
