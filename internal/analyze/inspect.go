package analyze

import (
	"fmt"
	"go/ast"
	"go/types"
	"slices"
	"sort"
	"strings"

	"union-generator/internal/marker"
	"union-generator/internal/model"
	"union-generator/internal/naming"
)

// Inspect describes the declaration d, found by Scan, together with its
// candidate cases. The root is inspected once; everything downstream reads
// the returned Report.
func (s *Scanner) Inspect(d Declaration) *Report {
	r := &Report{
		Name:          d.Obj.Name(),
		QualifiedName: d.ID.String(),
		PkgPath:       s.pkg.PkgPath,
		PkgName:       s.pkg.Name,
		Dir:           s.dir,
		Location:      d.Pos,
		Marker:        d.Marker,
		Types:         s.pkg.Types,
		IsExtensible:  true,
	}

	switch {
	case !d.TopLevel:
		r.IsExtensible = false
		r.ExtensibleReason = "it is declared inside a function"
	case d.Obj.IsAlias():
		r.IsExtensible = false
		r.ExtensibleReason = "it is a type alias"
	}

	r.IsGeneric = d.Spec.TypeParams != nil && d.Spec.TypeParams.NumFields() > 0

	under := d.Obj.Type().Underlying()
	r.Kind = kindOf(under)

	iface, ok := under.(*types.Interface)
	if !ok || !iface.IsMethodSet() {
		if st, ok := under.(*types.Struct); ok && st.NumFields() > 0 {
			r.HasInstanceFields = true
			r.InstanceState = fmt.Sprintf("%d field(s)", st.NumFields())
		}

		return r
	}

	r.IsAbstractRoot = true

	sealer, extra := s.rootMethods(d, iface)
	if len(extra) > 0 {
		r.HasInstanceFields = true
		r.InstanceState = strings.Join(extra, ", ")
	}

	if sealer == nil {
		return r
	}

	r.IsSealed = true
	r.MarkerMethod = sealer.Name()

	if r.IsGeneric {
		return r
	}

	r.Cases = s.collectCases(d.Obj, iface, sealer.Name())
	r.IsValueSemanticKind = true

	for _, c := range r.Live() {
		if c.Pointer {
			r.IsValueSemanticKind = false
		}
	}

	r.Collisions = s.collisions(r)

	return r
}

// rootMethods finds the sealing method of an interface root, the first
// unexported niladic method in declaration order, and describes the rest of
// the interface. An error union may embed error.
func (s *Scanner) rootMethods(d Declaration, iface *types.Interface) (*types.Func, []string) {
	var (
		sealer *types.Func
		extra  []string
	)

	consider := func(fn *types.Func) {
		if sealer == nil && isSealer(fn) {
			sealer = fn
			return
		}

		extra = append(extra, "method "+fn.Name())
	}

	embedded := func(name string) {
		if name == "error" && d.Marker.Flavor == marker.FlavorErrorUnion {
			return
		}

		extra = append(extra, "embedded "+name)
	}

	if lit, ok := d.Spec.Type.(*ast.InterfaceType); ok {
		for _, field := range lit.Methods.List {
			if len(field.Names) == 0 {
				embedded(types.ExprString(field.Type))
				continue
			}

			for _, name := range field.Names {
				if fn, ok := s.pkg.TypesInfo.Defs[name].(*types.Func); ok {
					consider(fn)
				}
			}
		}

		return sealer, extra
	}

	// Aliases to interface literals of other declarations: go/types orders
	// explicit methods by name only.
	for i := range iface.NumExplicitMethods() {
		consider(iface.ExplicitMethod(i))
	}

	for i := range iface.NumEmbeddeds() {
		embedded(types.TypeString(iface.EmbeddedType(i), types.RelativeTo(s.pkg.Types)))
	}

	return sealer, extra
}

func isSealer(fn *types.Func) bool {
	if fn.Exported() {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)

	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}

// collectCases returns the package-level named types that declare the
// sealing method themselves and implement the root, in declaration order.
// Types that only get the method through embedding are not cases.
func (s *Scanner) collectCases(root *types.TypeName, iface *types.Interface, sealer string) []CaseReport {
	scope := s.pkg.Types.Scope()

	var found []*types.TypeName

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn == root || tn.IsAlias() {
			continue
		}

		found = append(found, tn)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return s.before(found[i].Pos(), found[j].Pos())
	})

	var (
		cases []CaseReport
		first = make(map[string]string)
	)

	for _, tn := range found {
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		fn := declaredMethod(named, sealer)
		if fn == nil {
			continue
		}

		_, isIface := named.Underlying().(*types.Interface)

		c := CaseReport{
			Name:     naming.UpperFirst(tn.Name()),
			TypeName: tn.Name(),
			Obj:      tn,
			Location: s.position(tn.Pos()),
		}

		if td, ok := s.specs[tn]; ok {
			if name, ok := marker.CaseName(td.docs()...); ok {
				c.Name = name
			}
		}

		if recv := fn.Type().(*types.Signature).Recv(); recv != nil && !isIface {
			_, c.Pointer = recv.Type().(*types.Pointer)
		}

		c.IsGeneric = named.TypeParams().Len() > 0

		if !c.IsGeneric {
			var impl types.Type = named
			if c.Pointer {
				impl = types.NewPointer(named)
			}

			if !types.Implements(impl, iface) {
				continue
			}
		}

		c.IsClosedForInheritance = !isIface

		switch under := named.Underlying().(type) {
		case *types.Struct:
			for i := range under.NumFields() {
				f := under.Field(i)
				if f.Name() == "_" {
					continue
				}

				c.Fields = append(c.Fields, FieldReport{Name: f.Name(), Type: f.Type()})
			}
		case *types.Interface:
		default:
			c.Conversion = true
			c.Fields = []FieldReport{{Name: "value", Type: under}}
		}

		if prev, dup := first[c.Name]; dup {
			c.IsDuplicate = true
			c.FirstTypeName = prev
		} else if !c.IsGeneric {
			first[c.Name] = c.TypeName
		}

		cases = append(cases, c)
	}

	return cases
}

// declaredMethod returns the method called name declared on named itself,
// ignoring promoted methods. For an interface type it looks at the methods
// listed in the interface literal, not at embedded interfaces.
func declaredMethod(named *types.Named, name string) *types.Func {
	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := range iface.NumExplicitMethods() {
			if m := iface.ExplicitMethod(i); m.Name() == name {
				return m
			}
		}

		return nil
	}

	for i := range named.NumMethods() {
		if m := named.Method(i); m.Name() == name {
			return m
		}
	}

	return nil
}

// collisions lists the identifiers the renderers would declare that the
// package already declares. Declarations in previously written artifacts
// are replaced by the render and do not count; they are only present when
// the package was loaded without the build tag, as vet does.
func (s *Scanner) collisions(r *Report) []Collision {
	var names []string
	for _, c := range r.Live() {
		names = append(names, c.Name)
	}

	m := r.Marker
	ids := model.Identifiers(r.Name, m.Flavor, m.Factories, m.Downcasts, m.Adapters, names)
	scope := s.pkg.Types.Scope()

	var out []Collision

	for _, id := range ids {
		obj := scope.Lookup(id)
		if obj == nil {
			continue
		}

		pos := s.position(obj.Pos())
		if s.generated[pos.Filename] {
			continue
		}

		out = append(out, Collision{Ident: id, Pos: pos})
	}

	for _, c := range r.Live() {
		if slices.Contains(model.TypeParams, c.TypeName) {
			out = append(out, Collision{Ident: c.TypeName, Pos: c.Location})
		}
	}

	return out
}

func kindOf(t types.Type) string {
	switch t := t.(type) {
	case *types.Interface:
		if !t.IsMethodSet() {
			return "constraint interface"
		}

		return "interface"
	case *types.Struct:
		return "struct"
	case *types.Basic:
		return "basic type"
	case *types.Pointer:
		return "pointer"
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Map:
		return "map"
	case *types.Chan:
		return "channel"
	case *types.Signature:
		return "func"
	default:
		return "type"
	}
}
