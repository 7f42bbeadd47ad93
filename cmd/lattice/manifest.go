package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// manifestName is looked up in the working directory when --manifest is
// not given.
const manifestName = "lattice.toml"

// Manifest is the optional dump configuration file.
//
//	[dump]
//	out = "out/ir"
//	jobs = 4
//	cache = true
//	fixtures = ["declarations", "structured"]
type Manifest struct {
	Dump DumpConfig `toml:"dump"`
}

// DumpConfig configures the dump command.
type DumpConfig struct {
	Out      string   `toml:"out"`
	Jobs     int      `toml:"jobs"`
	Cache    bool     `toml:"cache"`
	Fixtures []string `toml:"fixtures"`
}

// loadManifest reads a manifest file. A missing default manifest is not
// an error; explicit paths must exist.
func loadManifest(path string) (*Manifest, error) {
	explicit := path != ""
	if !explicit {
		path = manifestName
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return &m, nil
}

// ensureDir creates the output directory for dump artifacts.
func ensureDir(dir string) error {
	if dir == "" {
		return errors.New("empty output directory")
	}
	return os.MkdirAll(dir, 0o755)
}
