package cache

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"union-generator/internal/gen"
)

// ManifestVersion is the current manifest format.
const ManifestVersion = "1"

// DefaultManifest is the manifest file name, relative to the working
// directory.
const DefaultManifest = ".union-generator.lock.yaml"

// Manifest records the artifacts written by previous passes.
type Manifest struct {
	Version   string  `yaml:"version"`
	Artifacts []Entry `yaml:"artifacts"`
}

// Entry is one written artifact.
type Entry struct {
	Key     string `yaml:"key"`
	Package string `yaml:"package"`
	// File is relative to the manifest's directory.
	File string `yaml:"file"`
	Hash string `yaml:"hash"`
}

// LoadManifest loads the manifest at path. A missing file yields an empty
// manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Version: ManifestVersion}, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	return ParseManifest(data)
}

// ParseManifest parses YAML data into a Manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest YAML")
	}

	if m.Version == "" {
		m.Version = ManifestVersion
	}

	if m.Version != ManifestVersion {
		return nil, errors.WithHint(
			errors.Newf("unsupported manifest version %q", m.Version),
			"delete the manifest; the next run recreates it",
		)
	}

	return &m, nil
}

// WriteManifest writes m to path.
func WriteManifest(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", path)
	}

	return nil
}

// NewEntry describes artifact a, produced for package pkg, relative to root.
func NewEntry(root, pkg string, a gen.Artifact) Entry {
	file := a.Path()
	if rel, err := filepath.Rel(root, file); err == nil {
		file = rel
	}

	return Entry{
		Key:     a.Key,
		Package: pkg,
		File:    filepath.ToSlash(file),
		Hash:    strconv.FormatUint(xxhash.Sum64(a.Content), 16),
	}
}

// Apply replaces the entries of the given packages with entries and returns
// the replaced entries whose file is no longer produced. Entries of other
// packages are kept.
func (m *Manifest) Apply(packages []string, entries []Entry) []Entry {
	covered := make(map[string]bool, len(packages))
	for _, p := range packages {
		covered[p] = true
	}

	produced := make(map[string]bool, len(entries))
	for _, e := range entries {
		produced[e.File] = true
	}

	var kept, stale []Entry

	for _, e := range m.Artifacts {
		switch {
		case !covered[e.Package]:
			kept = append(kept, e)
		case !produced[e.File]:
			stale = append(stale, e)
		}
	}

	m.Artifacts = append(kept, entries...)
	sort.SliceStable(m.Artifacts, func(i, j int) bool {
		return m.Artifacts[i].Key < m.Artifacts[j].Key
	})

	return stale
}

// Prune removes the files of stale entries, relative to root. Files that are
// gone already, or that no longer carry the generated header, are left
// alone. It returns the removed paths.
func Prune(root string, stale []Entry) ([]string, error) {
	var removed []string

	for _, e := range stale {
		path := filepath.Join(root, filepath.FromSlash(e.File))

		content, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return removed, errors.Wrapf(err, "reading %s", path)
		}

		if !gen.IsGenerated(content) {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, errors.Wrapf(err, "removing %s", path)
		}

		removed = append(removed, path)
	}

	return removed, nil
}
