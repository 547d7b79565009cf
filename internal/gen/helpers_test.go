package gen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"union-generator/internal/model"
)

const (
	optionPath = "union-generator/option"
	resultPath = "union-generator/result"
)

func shapeModel() *model.Union {
	f64 := func(name, param string) model.Field {
		return model.Field{Name: name, QualifiedTypeName: "float64", ShortTypeName: "float64", ParameterName: param}
	}

	return &model.Union{
		Name:                "Shape",
		QualifiedName:       "example.com/shapes.Shape",
		Namespace:           "example.com/shapes",
		PackageName:         "shapes",
		Flavor:              model.FlavorUnion,
		IsValueSemanticKind: true,
		EmitFactories:       true,
		EmitSafeDowncasts:   true,
		Option:              model.Import{Name: "option", Path: optionPath},
		Cases: []model.Case{
			{
				Name: "Circle", TypeName: "Circle", QualifiedTypeName: "example.com/shapes.Circle",
				ParameterName: "circle", Factory: true,
				Fields: []model.Field{f64("Radius", "radius")},
			},
			{
				Name: "Rectangle", TypeName: "Rectangle", QualifiedTypeName: "example.com/shapes.Rectangle",
				ParameterName: "rectangle", Factory: true,
				Fields: []model.Field{f64("Width", "width"), f64("Height", "height")},
			},
		},
	}
}

const shapeSource = `package shapes

type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

type Rectangle struct{ Width, Height float64 }

func (Rectangle) isShape() {}
`

func userErrorModel() *model.Union {
	return &model.Union{
		Name:              "UserError",
		QualifiedName:     "example.com/users.UserError",
		Namespace:         "example.com/users",
		PackageName:       "users",
		Flavor:            model.FlavorErrorUnion,
		EmitFactories:     true,
		EmitSafeDowncasts: true,
		EmitAdapterLayer:  true,
		Option:            model.Import{Name: "option", Path: optionPath},
		Result:            model.Import{Name: "result", Path: resultPath},
		Cases: []model.Case{
			{
				Name: "NotFound", TypeName: "NotFound", ParameterName: "notFound", Factory: true,
				Fields: []model.Field{{Name: "ID", QualifiedTypeName: "string", ShortTypeName: "string", ParameterName: "id"}},
			},
			{Name: "Unauthorized", TypeName: "Unauthorized", ParameterName: "unauthorized", Factory: true},
		},
	}
}

const userErrorSource = `package users

type UserError interface {
	error
	isUserError()
}

type NotFound struct{ ID string }

func (NotFound) isUserError()    {}
func (e NotFound) Error() string { return "not found: " + e.ID }

type Unauthorized struct{}

func (Unauthorized) isUserError()  {}
func (Unauthorized) Error() string { return "unauthorized" }
`

// moduleImporter resolves the option and result packages of this module from
// their sources and everything else from the standard library sources.
type moduleImporter struct {
	t     *testing.T
	fset  *token.FileSet
	std   types.Importer
	local map[string]*types.Package
}

func newModuleImporter(t *testing.T, fset *token.FileSet) *moduleImporter {
	return &moduleImporter{
		t:     t,
		fset:  fset,
		std:   importer.ForCompiler(fset, "source", nil),
		local: make(map[string]*types.Package),
	}
}

func (m *moduleImporter) Import(path string) (*types.Package, error) {
	dirs := map[string]string{
		optionPath: filepath.Join("..", "..", "option", "option.go"),
		resultPath: filepath.Join("..", "..", "result", "result.go"),
	}

	file, ok := dirs[path]
	if !ok {
		return m.std.Import(path)
	}

	if pkg, ok := m.local[path]; ok {
		return pkg, nil
	}

	src, err := os.ReadFile(file)
	require.NoError(m.t, err)

	pkg := m.check(path, map[string]string{filepath.Base(file): string(src)})
	m.local[path] = pkg

	return pkg, nil
}

func (m *moduleImporter) check(path string, files map[string]string) *types.Package {
	m.t.Helper()

	var syntax []*ast.File

	for name, src := range files {
		f, err := parser.ParseFile(m.fset, name, src, parser.ParseComments)
		require.NoError(m.t, err, name)

		syntax = append(syntax, f)
	}

	conf := types.Config{Importer: m}
	pkg, err := conf.Check(path, m.fset, syntax, nil)
	require.NoError(m.t, err)

	return pkg
}

// typeCheck compiles the hand-written package source together with the
// rendered artifacts.
func typeCheck(t *testing.T, path, source string, artifacts []Artifact) *types.Package {
	t.Helper()

	files := map[string]string{"source.go": source}
	for _, a := range artifacts {
		files[a.Filename] = string(a.Content)
	}

	fset := token.NewFileSet()

	return newModuleImporter(t, fset).check(path, files)
}

func funcNames(t *testing.T, content []byte) []string {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", content, 0)
	require.NoError(t, err)

	var names []string

	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			names = append(names, fn.Name.Name)
		}
	}

	return names
}

func importPaths(t *testing.T, content []byte) []string {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", content, parser.ImportsOnly)
	require.NoError(t, err)

	var paths []string

	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)

		paths = append(paths, path)
	}

	return paths
}
