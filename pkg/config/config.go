// Package config holds the settings for a pdbfreq run. Defaults can be
// replaced by a yaml file, and command line flags replace both.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/andrew-torda/pdbfreq/pkg/report"
	"gopkg.in/yaml.v3"
)

// Config is everything a run needs apart from the input path.
type Config struct {
	Workers    int     `yaml:"workers"`     // files scanned at once
	OutDir     string  `yaml:"out_dir"`     // where reports go
	TagsFile   string  `yaml:"tags_file"`   // csv table of tag counts
	FieldsFile string  `yaml:"fields_file"` // listing of field values
	Extension  string  `yaml:"extension"`   // input files in a directory end in this
	Gzip       bool    `yaml:"gzip"`        // also take <extension>.gz
	DB         string  `yaml:"db"`          // sqlite export, off if empty
	Log        string  `yaml:"log"`         // "", stdout, stderr or a file name
	Verbose    bool    `yaml:"verbose"`
	BrokenIO   float32 `yaml:"broken_io"` // probability of an artificial read failure
}

// Default returns the settings used when nothing else is said.
func Default() *Config {
	return &Config{
		Workers:    runtime.NumCPU(),
		OutDir:     ".",
		TagsFile:   report.TagsFile,
		FieldsFile: report.FieldsFile,
		Extension:  ".pdb",
		Log:        "stderr",
	}
}

// Load reads a yaml file on top of the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Check catches settings that cannot work.
func (c *Config) Check() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Extension == "" || !strings.HasPrefix(c.Extension, "."):
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	case c.TagsFile == "" || c.FieldsFile == "":
		return fmt.Errorf("output file names must not be empty")
	case c.BrokenIO < 0 || c.BrokenIO > 1:
		return fmt.Errorf("broken_io %v is not a probability", c.BrokenIO)
	}
	return nil
}

// Matches says if a directory entry is one of our input files. The
// comparison ignores case.
func (c *Config) Matches(name string) bool {
	lname := strings.ToLower(name)
	ext := strings.ToLower(c.Extension)
	if strings.HasSuffix(lname, ext) {
		return true
	}
	return c.Gzip && strings.HasSuffix(lname, ext+".gz")
}
