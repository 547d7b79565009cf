package analyze

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

const fixturePath = "example.com/fixture"

// loadSource type-checks src as a single-file package the way Load would
// have returned it.
func loadSource(t *testing.T, src string) *packages.Package {
	t.Helper()

	return loadFiles(t, map[string]string{"src.go": src})
}

// loadFiles type-checks sources, keyed by file name, as one package.
func loadFiles(t *testing.T, sources map[string]string) *packages.Package {
	t.Helper()

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}

	sort.Strings(names)

	fset := token.NewFileSet()

	var (
		files   []*ast.File
		goFiles []string
	)

	for _, name := range names {
		path := "/fixture/" + name

		file, err := parser.ParseFile(fset, path, sources[name], parser.ParseComments)
		require.NoError(t, err)

		files = append(files, file)
		goFiles = append(goFiles, path)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check(fixturePath, fset, files, info)
	require.NoError(t, err)

	return &packages.Package{
		ID:        fixturePath,
		Name:      tpkg.Name(),
		PkgPath:   fixturePath,
		GoFiles:   goFiles,
		Fset:      fset,
		Syntax:    files,
		Types:     tpkg,
		TypesInfo: info,
	}
}

// inspectOnly scans src and inspects its single marked declaration.
func inspectOnly(t *testing.T, src string) *Report {
	t.Helper()

	s := NewScanner(loadSource(t, src))
	decls := s.Scan()
	require.Len(t, decls, 1)

	return s.Inspect(decls[0])
}

func caseNames(r *Report) []string {
	var names []string
	for _, c := range r.Cases {
		names = append(names, c.Name)
	}

	return names
}
