package gen

import (
	"bytes"
	"go/format"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"union-generator/internal/model"
	"union-generator/internal/naming"
)

// Tool is the generator name written into every artifact header.
const Tool = model.Tool

// Version identifies the templates. Cached renders from another version are
// stale.
const Version = "1"

// Header is the first line of every artifact.
const Header = model.Header

// DefaultBuildTag excludes artifacts from the generator's own loads.
const DefaultBuildTag = "uniongen"

// Config holds configuration for code generation.
type Config struct {
	// BuildTag is negated in the artifacts' //go:build line.
	BuildTag string
	// Debug writes an .unformatted.go sidecar next to an artifact that
	// fails to format.
	Debug bool
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{BuildTag: DefaultBuildTag}
}

// Generator renders union models. It holds no state between renders and is
// safe for concurrent use.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	if config.BuildTag == "" {
		config.BuildTag = DefaultBuildTag
	}

	return &Generator{config: config}
}

// Artifact is one generated Go source file.
type Artifact struct {
	// Key identifies the artifact, e.g. "example.com/shapes.Shape.Union.generated".
	Key string
	// Union is the qualified name of the union the artifact belongs to.
	Union    string
	Dir      string
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file path of the artifact.
func (a Artifact) Path() string {
	return filepath.Join(a.Dir, a.Filename)
}

// UnionFilename returns the file name of the main artifact of union.
func UnionFilename(union string) string {
	return naming.Snake(union) + "_union.gen.go"
}

// AdapterFilename returns the file name of the adapter artifact of union.
func AdapterFilename(union string) string {
	return naming.Snake(union) + "_adapters.gen.go"
}

// IsGenerated reports whether content starts with the artifact header.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(Header))
}

// Render renders every artifact of u. Either all artifacts are returned or
// none; a panic while rendering is returned as an error.
func (g *Generator) Render(u *model.Union) (artifacts []Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifacts = nil
			err = errors.Newf("rendering %s panicked: %v", u.QualifiedName, r)
		}
	}()

	data := newFileData(u, g.config.BuildTag)
	data.Imports = unionImports(u, data)

	main, err := g.render("union", data, u.Dir, UnionFilename(u.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", u.ArtifactKey())
	}

	artifacts = append(artifacts, Artifact{
		Key:      u.ArtifactKey(),
		Union:    u.QualifiedName,
		Dir:      u.Dir,
		Filename: UnionFilename(u.Name),
		Content:  main,
	})

	if !u.EmitAdapterLayer {
		return artifacts, nil
	}

	adapterData := newFileData(u, g.config.BuildTag)
	adapterData.Imports = []string{u.Result.Spec()}

	adapters, err := g.render("adapters", adapterData, u.Dir, AdapterFilename(u.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", u.AdapterKey())
	}

	artifacts = append(artifacts, Artifact{
		Key:      u.AdapterKey(),
		Union:    u.QualifiedName,
		Dir:      u.Dir,
		Filename: AdapterFilename(u.Name),
		Content:  adapters,
	})

	return artifacts, nil
}

func (g *Generator) render(name string, data fileData, dir, filename string) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.Debug {
			_ = writeDebugUnformatted(dir, filename, buf.Bytes())
		}

		return nil, errors.Wrapf(err, "formatting %s", filename)
	}

	return formatted, nil
}
