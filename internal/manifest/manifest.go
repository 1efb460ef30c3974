// Package manifest loads bmpp.toml, the project-level manifest that lists
// a BMPP project's source files, default transpile target, and template
// directory.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Filename is the conventional name of a project manifest.
const Filename = "bmpp.toml"

// Manifest is the decoded contents of a bmpp.toml file.
type Manifest struct {
	// Sources lists the BMPP source files belonging to this project,
	// relative to the manifest's directory. May contain glob patterns.
	Sources []string `toml:"sources"`

	// DefaultTarget is the code-generation target used when a CLI
	// command omits --target (e.g. "go").
	DefaultTarget string `toml:"default_target"`

	// TemplateDir names a directory of protocol templates. It is stored
	// and written back as-is; `codeai init` does not read it and scaffolds
	// only its built-in templates.
	TemplateDir string `toml:"template_dir,omitempty"`
}

// Default returns the manifest written by `codeai init` when the user
// does not customize it further.
func Default() Manifest {
	return Manifest{
		Sources:       []string{"**/*.bmpp"},
		DefaultTarget: "go",
	}
}

// Load decodes a bmpp.toml file at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.DefaultTarget == "" {
		m.DefaultTarget = "go"
	}
	return &m, nil
}

// Find searches dir and its ancestors for a bmpp.toml file, stopping at a
// filesystem root or a .git boundary. It returns ("", nil, nil) if none is
// found.
func Find(dir string) (string, *Manifest, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, Filename)
		if _, err := os.Stat(path); err == nil {
			m, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, m, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// Write serializes m as TOML and writes it to path.
func Write(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
