// Package extract turns an inspected root into a model.Union.
//
// Extract is the strict side of analysis: it builds a model only for roots
// that satisfy every gating rule and have at least one usable case. It
// reports nothing; explaining a skipped root is the validator's job.
package extract

import (
	"go/types"
	"path"
	"sort"
	"strconv"

	"union-generator/internal/analyze"
	"union-generator/internal/model"
	"union-generator/internal/naming"
)

// Env describes the target environment of the generated code.
type Env struct {
	// OptionPath is the import path of the option package. Safe downcasts
	// are only generated when it is set.
	OptionPath string
	// ResultPath is the import path of the result package. The result
	// bridge and the adapter layer are only generated when it is set.
	ResultPath string
}

// reservedParams are identifiers the renderers use for their own parameters.
var reservedParams = map[string]bool{
	"u": true, "r": true, "h": true, "ok": true, "e": true, "v": true,
	"success": true, "fmt": true,
}

// Accepts reports whether r satisfies the strict generation contract.
func Accepts(r *analyze.Report) bool {
	return r.IsAbstractRoot &&
		r.IsSealed &&
		r.IsExtensible &&
		!r.IsGeneric &&
		len(r.Collisions) == 0 &&
		len(r.Live()) > 0
}

// Extract builds the union model of r, or returns nil when r does not
// satisfy the generation contract.
func Extract(r *analyze.Report, env Env) *model.Union {
	if !Accepts(r) {
		return nil
	}

	m := r.Marker
	alloc := newImports(r.Types, r.PkgPath)

	u := &model.Union{
		Name:                r.Name,
		QualifiedName:       r.QualifiedName,
		Namespace:           r.PkgPath,
		PackageName:         r.PkgName,
		Dir:                 r.Dir,
		Flavor:              m.Flavor,
		IsValueSemanticKind: r.IsValueSemanticKind,
		EmitFactories:       m.Factories,
	}

	if env.OptionPath != "" {
		u.Option = alloc.reserve(env.OptionPath)
	}

	if env.ResultPath != "" && m.Flavor == model.FlavorErrorUnion {
		u.Result = alloc.reserve(env.ResultPath)
	}

	u.EmitSafeDowncasts = m.Downcasts && u.Option.Available()
	u.EmitAdapterLayer = m.Flavor == model.FlavorErrorUnion && m.Adapters && u.Result.Available()

	// Parameters share function bodies with the option and result package
	// names and with the type names the bodies refer to. A lowercase case
	// type must not be shadowed by its own handler.
	live := r.Live()

	typeNames := map[string]bool{r.Name: true}
	for _, c := range live {
		typeNames[c.TypeName] = true
	}

	params := map[string]bool{u.Option.Name: true, u.Result.Name: true}
	for name := range typeNames {
		params[name] = true
	}

	for _, c := range live {
		cm := model.Case{
			Name:              c.Name,
			TypeName:          c.TypeName,
			QualifiedTypeName: r.PkgPath + "." + c.TypeName,
			ParameterName:     uniqueParam(params, naming.Param(c.Name)),
			Pointer:           c.Pointer,
			Conversion:        c.Conversion,
			Factory:           c.IsClosedForInheritance,
		}

		fieldParams := make(map[string]bool, len(typeNames))
		for name := range typeNames {
			fieldParams[name] = true
		}

		for _, f := range c.Fields {
			cm.Fields = append(cm.Fields, model.Field{
				Name:              f.Name,
				QualifiedTypeName: types.TypeString(f.Type, nil),
				ShortTypeName:     types.TypeString(f.Type, alloc.qualifier),
				ParameterName:     uniqueParam(fieldParams, naming.FieldParam(f.Name)),
			})
		}

		u.Cases = append(u.Cases, cm)
	}

	if u.EmitFactories {
		u.Imports = alloc.fieldImports()
	}

	return u
}

// uniqueParam suffixes base until it avoids the renderers' own parameters
// and the names already in seen.
func uniqueParam(seen map[string]bool, base string) string {
	if base == "" {
		base = "x"
	}

	p := base
	for i := 2; seen[p] || reservedParams[p]; i++ {
		p = base + strconv.Itoa(i)
	}

	seen[p] = true

	return p
}

// imports allocates collision-free local package names for a generated file
// living in the package self.
type imports struct {
	self   string
	taken  map[string]bool
	byPath map[string]model.Import
	fields map[string]bool
}

func newImports(scope *types.Package, self string) *imports {
	im := &imports{
		self:   self,
		taken:  map[string]bool{"fmt": true},
		byPath: make(map[string]model.Import),
		fields: make(map[string]bool),
	}

	if scope != nil {
		for _, name := range scope.Scope().Names() {
			im.taken[name] = true
		}
	}

	return im
}

// reserve allocates a name for the package at p.
func (im *imports) reserve(p string) model.Import {
	return im.alloc(p, path.Base(p))
}

func (im *imports) alloc(p, declared string) model.Import {
	if imp, ok := im.byPath[p]; ok {
		return imp
	}

	name := declared
	for i := 2; im.taken[name]; i++ {
		name = declared + strconv.Itoa(i)
	}

	im.taken[name] = true
	imp := model.Import{Name: name, Path: p, Alias: name != path.Base(p)}
	im.byPath[p] = imp

	return imp
}

// qualifier is a types.Qualifier for field types.
func (im *imports) qualifier(pkg *types.Package) string {
	if pkg.Path() == im.self {
		return ""
	}

	im.fields[pkg.Path()] = true

	return im.alloc(pkg.Path(), pkg.Name()).Name
}

// fieldImports returns the packages referenced by field types, sorted by
// path.
func (im *imports) fieldImports() []model.Import {
	out := make([]model.Import, 0, len(im.fields))
	for p := range im.fields {
		out = append(out, im.byPath[p])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}
