package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"union-generator/internal/marker"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "union-generator/examples/shapes"
	Name    string // e.g., "Shape"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Declaration is a type declaration carrying a root directive.
type Declaration struct {
	ID     TypeID
	Obj    *types.TypeName
	Spec   *ast.TypeSpec
	Marker marker.Marker
	Pos    token.Position
	// TopLevel is false for types declared inside a function body.
	TopLevel bool
}

// Report describes a union root and its candidate cases as found in source.
type Report struct {
	Name          string
	QualifiedName string
	PkgPath       string
	PkgName       string
	Dir           string
	Location      token.Position
	Marker        marker.Marker
	// Types is the package declaring the root; generated code lives in it.
	Types *types.Package

	// Kind names the underlying type of the root ("interface", "struct", ...).
	Kind string

	IsAbstractRoot bool
	IsSealed       bool
	// MarkerMethod is the unexported niladic method sealing the root.
	MarkerMethod string

	IsExtensible     bool
	ExtensibleReason string // why the root is not extensible

	IsGeneric bool

	// IsValueSemanticKind is set when every case marks itself with a value
	// receiver.
	IsValueSemanticKind bool

	HasInstanceFields bool
	InstanceState     string // e.g. "method Area"

	// Cases in declaration order, duplicates included.
	Cases []CaseReport
	// Collisions lists generated identifiers already declared in the package.
	Collisions []Collision
}

// CaseReport describes one candidate case.
type CaseReport struct {
	Name     string // case name, after any override
	TypeName string
	Obj      *types.TypeName
	Location token.Position

	// IsClosedForInheritance is false for interface cases, which other
	// types could implement in turn.
	IsClosedForInheritance bool
	IsDuplicate            bool
	FirstTypeName          string // the type that first used Name, set on duplicates
	IsGeneric              bool
	Pointer                bool
	Conversion             bool
	Fields                 []FieldReport
}

// FieldReport is one payload field of a case.
type FieldReport struct {
	Name string
	Type types.Type
}

// Collision is a generated identifier that is already taken.
type Collision struct {
	Ident string
	Pos   token.Position
}

// Live returns the cases that take part in generation: first occurrences of
// non-generic cases, in declaration order.
func (r *Report) Live() []CaseReport {
	var live []CaseReport

	for _, c := range r.Cases {
		if c.IsDuplicate || c.IsGeneric {
			continue
		}

		live = append(live, c)
	}

	return live
}
