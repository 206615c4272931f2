// Package project loads the picto.toml manifest that configures a build:
// package metadata, output path, whether the optimizer runs, and the
// semver constraint naming the compiler versions the project accepts.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the manifest's fixed file name.
const ManifestName = "picto.toml"

// Version is the compiler version, validated against the manifest's
// compiler constraint.
const Version = "0.1.0"

// Manifest is the parsed picto.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
}

// PackageSection names the project and constrains the compiler.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// Compiler is a semver constraint, e.g. ">= 0.1.0". Empty accepts any
	// compiler.
	Compiler string `toml:"compiler"`
}

// BuildSection configures output.
type BuildSection struct {
	Out      string `toml:"out"`
	Optimize bool   `toml:"optimize"`
}

// Load reads and validates a manifest file. The optimizer defaults to on
// when the manifest does not say otherwise.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes manifest bytes and checks the compiler constraint.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{Build: BuildSection{Optimize: true}}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.CheckCompiler(Version); err != nil {
		return nil, err
	}
	return m, nil
}

// Find looks for the manifest next to the given source file; the second
// result is false when the project has none.
func Find(sourcePath string) (string, bool) {
	path := filepath.Join(filepath.Dir(sourcePath), ManifestName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// CheckCompiler validates the manifest's compiler constraint against a
// compiler version.
func (m *Manifest) CheckCompiler(version string) error {
	if m.Package.Compiler == "" {
		return nil
	}
	c, err := semver.NewConstraint(m.Package.Compiler)
	if err != nil {
		return fmt.Errorf("manifest compiler constraint %q: %w", m.Package.Compiler, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("compiler version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("project requires compiler %s, this is %s", m.Package.Compiler, version)
	}
	return nil
}
