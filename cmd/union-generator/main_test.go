package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"union-generator/internal/cache"
	"union-generator/internal/gen"
)

const shapesSource = `package shapes

//uniongen:union
type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

type Rectangle struct{ Width, Height float64 }

func (Rectangle) isShape() {}
`

// newModule writes a throwaway module holding files and returns its
// directory.
func newModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/shapes\n\ngo 1.24\n"

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), append(args, "--log-level", "error"), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestGen(t *testing.T) {
	dir := newModule(t, map[string]string{"shape.go": shapesSource})

	code, stdout, stderr := execute(t, "gen", "-C", dir)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(filepath.Join(dir, gen.UnionFilename("Shape")))
	require.NoError(t, err)
	assert.True(t, gen.IsGenerated(content))
	assert.Contains(t, string(content), "func IsCircle(u Shape) bool")
	assert.Contains(t, string(content), "func MatchShape[R any](u Shape, circle func(Circle) R, rectangle func(Rectangle) R) R")

	m, err := cache.LoadManifest(filepath.Join(dir, cache.DefaultManifest))
	require.NoError(t, err)
	require.Len(t, m.Artifacts, 1)
	assert.Equal(t, "example.com/shapes", m.Artifacts[0].Package)
	assert.Equal(t, gen.UnionFilename("Shape"), m.Artifacts[0].File)

	code, stdout, stderr = execute(t, "check", "--stale", "-C", dir)
	assert.Equal(t, 0, code, stdout+stderr)
}

func TestGen_RerunWithGeneratedAPIInUse(t *testing.T) {
	dir := newModule(t, map[string]string{
		"shape.go": shapesSource,
		"area.go": `package shapes

func Area(s Shape) float64 {
	return MatchShape(s,
		func(c Circle) float64 { return 3 * c.Radius * c.Radius },
		func(r Rectangle) float64 { return r.Width * r.Height },
	)
}
`,
	})

	code, _, stderr := execute(t, "gen", "-C", dir)
	require.Equal(t, 0, code, stderr)

	artifact := filepath.Join(dir, gen.UnionFilename("Shape"))
	first, err := os.ReadFile(artifact)
	require.NoError(t, err)

	code, stdout, stderr := execute(t, "gen", "-C", dir)
	require.Equal(t, 0, code, stdout+stderr)

	second, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	code, stdout, stderr = execute(t, "check", "--stale", "-C", dir)
	assert.Equal(t, 0, code, stdout+stderr)
}

func TestGen_PrunesRemovedUnion(t *testing.T) {
	dir := newModule(t, map[string]string{"shape.go": shapesSource})

	code, _, stderr := execute(t, "gen", "-C", dir)
	require.Equal(t, 0, code, stderr)

	artifact := filepath.Join(dir, gen.UnionFilename("Shape"))
	require.FileExists(t, artifact)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shape.go"), []byte("package shapes\n\ntype Shape interface{ Area() float64 }\n"), 0o644))

	code, _, stderr = execute(t, "gen", "-C", dir)
	require.Equal(t, 0, code, stderr)

	assert.NoFileExists(t, artifact)
	assert.NoFileExists(t, filepath.Join(dir, cache.DefaultManifest))
}

func TestGen_ErrorDiagnostics(t *testing.T) {
	dir := newModule(t, map[string]string{"shape.go": `package shapes

//uniongen:union
type Shape interface{ Area() float64 }

type Circle struct{ Radius float64 }

func (Circle) Area() float64 { return 0 }
`})

	code, stdout, _ := execute(t, "gen", "-C", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "[UG002]")
	assert.Contains(t, stdout, "shape.go:4:")
	assert.NoFileExists(t, filepath.Join(dir, gen.UnionFilename("Shape")))
}

func TestCheck_Stale(t *testing.T) {
	dir := newModule(t, map[string]string{"shape.go": shapesSource})

	code, stdout, _ := execute(t, "check", "--stale", "-C", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, gen.UnionFilename("Shape")+": stale")
	assert.NoFileExists(t, filepath.Join(dir, gen.UnionFilename("Shape")), "check never writes")

	code, stdout, _ = execute(t, "check", "-C", dir)
	assert.Equal(t, 0, code, stdout)
}

func TestConfigErrors(t *testing.T) {
	code, _, stderr := execute(t, "check", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read config")

	code, _, stderr = execute(t, "check", "--workers", "-1", "-C", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "workers must not be negative")
	assert.Contains(t, stderr, "hint:")
}
