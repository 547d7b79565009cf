package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"union-generator/internal/marker"
	"union-generator/internal/model"
)

// Scanner indexes the type declarations of one loaded package. It is
// read-only after NewScanner returns and may be shared between goroutines.
type Scanner struct {
	pkg   *packages.Package
	dir   string
	specs map[*types.TypeName]*typeDecl
	decls []*typeDecl // in source order

	// generated holds the file names of previously written artifacts.
	generated map[string]bool
}

type typeDecl struct {
	obj      *types.TypeName
	spec     *ast.TypeSpec
	gen      *ast.GenDecl
	topLevel bool
}

// docs returns the comment groups documenting the declaration. The GenDecl
// doc only counts for an unparenthesized declaration.
func (d *typeDecl) docs() []*ast.CommentGroup {
	if d.gen != nil && !d.gen.Lparen.IsValid() {
		return []*ast.CommentGroup{d.spec.Doc, d.gen.Doc}
	}

	return []*ast.CommentGroup{d.spec.Doc}
}

// NewScanner indexes every type declaration of pkg, including those nested
// in function bodies.
func NewScanner(pkg *packages.Package) *Scanner {
	s := &Scanner{
		pkg:   pkg,
		dir:   Dir(pkg),
		specs: make(map[*types.TypeName]*typeDecl),

		generated: make(map[string]bool),
	}

	for _, file := range pkg.Syntax {
		if isArtifact(file) {
			s.generated[pkg.Fset.Position(file.Package).Filename] = true
			continue
		}

		topLevel := make(map[*ast.GenDecl]bool)

		for _, d := range file.Decls {
			if gen, ok := d.(*ast.GenDecl); ok {
				topLevel[gen] = true
			}
		}

		ast.Inspect(file, func(n ast.Node) bool {
			gen, ok := n.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				return true
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				td := &typeDecl{obj: obj, spec: ts, gen: gen, topLevel: topLevel[gen]}
				s.specs[obj] = td
				s.decls = append(s.decls, td)
			}

			return true
		})
	}

	sort.SliceStable(s.decls, func(i, j int) bool {
		return s.before(s.decls[i].obj.Pos(), s.decls[j].obj.Pos())
	})

	return s
}

// isArtifact reports whether file carries the artifact header above its
// package clause.
func isArtifact(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == model.Header {
				return true
			}
		}
	}

	return false
}

// Package returns the scanned package.
func (s *Scanner) Package() *packages.Package {
	return s.pkg
}

// Scan returns every declaration carrying a root directive, in source order.
func (s *Scanner) Scan() []Declaration {
	var out []Declaration

	for _, td := range s.decls {
		m, ok := marker.Find(td.docs()...)
		if !ok {
			continue
		}

		out = append(out, Declaration{
			ID:       TypeID{PkgPath: s.pkg.PkgPath, Name: td.obj.Name()},
			Obj:      td.obj,
			Spec:     td.spec,
			Marker:   m,
			Pos:      s.position(td.obj.Pos()),
			TopLevel: td.topLevel,
		})
	}

	return out
}

func (s *Scanner) position(pos token.Pos) token.Position {
	return s.pkg.Fset.Position(pos)
}

// before orders positions by file name, then offset.
func (s *Scanner) before(a, b token.Pos) bool {
	pa, pb := s.position(a), s.position(b)
	if pa.Filename != pb.Filename {
		return pa.Filename < pb.Filename
	}

	return pa.Offset < pb.Offset
}
