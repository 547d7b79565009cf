package analyze

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
//
// NeedDeps makes go/packages type-check from source instead of export
// data, so references to generated functions surface as type errors
// rather than compile failures of the listed package.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// DefaultBuildTag is set while loading so files constrained with
// //go:build !uniongen, the generated ones, are left out.
const DefaultBuildTag = "uniongen"

// Options configures Load.
type Options struct {
	Dir      string   // working directory of the build system
	Patterns []string // standard Go package patterns, defaults to "./..."
	BuildTag string   // defaults to DefaultBuildTag
	Tests    bool     // include _test.go files
	Logger   *zap.Logger
}

// Load loads and type-checks the packages matching opts.Patterns.
//
// Type errors do not fail the load: hand-written code commonly calls
// functions that only the excluded generated files declare, and the
// declarations the analysis reads are complete regardless. Listing and
// parse errors do.
func Load(ctx context.Context, opts Options) ([]*packages.Package, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	tag := opts.BuildTag
	if tag == "" {
		tag = DefaultBuildTag
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        opts.Dir,
		Tests:      opts.Tests,
		BuildFlags: []string{"-tags=" + tag},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	var msgs []string

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				log.Debug("ignoring type error", zap.String("package", pkg.PkgPath), zap.String("error", e.Error()))
				continue
			}

			msgs = append(msgs, e.Error())
		}
	})

	if len(msgs) > 0 {
		return nil, errors.Newf("package errors: %s", strings.Join(msgs, "; "))
	}

	if opts.Tests {
		pkgs = dedupeTestVariants(pkgs)
	}

	return pkgs, nil
}

// Dir returns the directory holding the package's files.
func Dir(pkg *packages.Package) string {
	switch {
	case len(pkg.GoFiles) > 0:
		return filepath.Dir(pkg.GoFiles[0])
	case len(pkg.CompiledGoFiles) > 0:
		return filepath.Dir(pkg.CompiledGoFiles[0])
	default:
		return ""
	}
}

// dedupeTestVariants keeps one package per import path, preferring the
// variant compiled with its tests, and drops generated test mains.
func dedupeTestVariants(pkgs []*packages.Package) []*packages.Package {
	index := make(map[string]int)

	var out []*packages.Package

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}

		i, seen := index[pkg.PkgPath]
		if !seen {
			index[pkg.PkgPath] = len(out)
			out = append(out, pkg)

			continue
		}

		if len(pkg.Syntax) > len(out[i].Syntax) {
			out[i] = pkg
		}
	}

	return out
}
