package model

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Flavor selects which renderer consumes a Union.
type Flavor int

const (
	FlavorUnion Flavor = iota
	FlavorErrorUnion
)

// String returns a human-readable flavor name.
func (f Flavor) String() string {
	switch f {
	case FlavorUnion:
		return "union"
	case FlavorErrorUnion:
		return "errorunion"
	default:
		return "Flavor(" + strconv.Itoa(int(f)) + ")"
	}
}

// Union describes one validated union root and its cases.
type Union struct {
	Name          string // e.g. "Shape"
	QualifiedName string // e.g. "example.com/shapes.Shape"
	Namespace     string // package import path
	PackageName   string // package clause of the generated file
	Dir           string // directory the generated files are written to
	Flavor        Flavor

	IsValueSemanticKind bool
	EmitFactories       bool
	EmitSafeDowncasts   bool
	EmitAdapterLayer    bool

	// Option and Result are the runtime collaborator packages. A zero
	// Import means the package is not available.
	Option Import
	Result Import

	// Imports are the packages referenced by field types, sorted by path.
	Imports []Import
	// Cases in declaration order.
	Cases []Case
}

// Case is one alternative of a union.
type Case struct {
	Name              string // unique within the union
	TypeName          string // Go identifier of the case type
	QualifiedTypeName string
	ParameterName     string // handler / argument identifier
	// Pointer is set when the case marks itself with a pointer receiver; the
	// case is then matched and built as *TypeName.
	Pointer bool
	// Conversion is set for non-struct cases, built as TypeName(value).
	Conversion bool
	// Factory is false for cases that cannot be built from fields
	// (interface cases).
	Factory bool
	Fields  []Field
}

// Field is one payload field of a case.
type Field struct {
	Name              string
	QualifiedTypeName string // fully qualified, e.g. "github.com/google/uuid.UUID"
	ShortTypeName     string // as written in the generated file, e.g. "uuid.UUID"
	ParameterName     string
}

// Import is a package import of a generated file.
type Import struct {
	Name string // local name used in the file
	Path string
	// Alias is set when Name differs from the package's declared name.
	Alias bool
}

// Available reports whether the import is set.
func (i Import) Available() bool {
	return i.Path != ""
}

// Spec returns the import spec as written in an import block.
func (i Import) Spec() string {
	if i.Alias {
		return i.Name + " " + strconv.Quote(i.Path)
	}

	return strconv.Quote(i.Path)
}

// Ref returns the type expression of the case as used in generated code.
func (c Case) Ref() string {
	if c.Pointer {
		return "*" + c.TypeName
	}

	return c.TypeName
}

// ArtifactKey returns the key of the union's main artifact.
func (u *Union) ArtifactKey() string {
	if u.Flavor == FlavorErrorUnion {
		return u.QualifiedName + ".ErrorUnion.generated"
	}

	return u.QualifiedName + ".Union.generated"
}

// AdapterKey returns the key of the error-union adapter artifact.
func (u *Union) AdapterKey() string {
	return u.QualifiedName + ".Adapters.generated"
}

// Hash returns a content hash of the model. Equal models hash equally
// regardless of the declaration text they were extracted from.
func (u *Union) Hash() uint64 {
	// Struct field order makes the JSON encoding canonical.
	b, err := json.Marshal(u)
	if err != nil {
		// Union holds only strings, bools and slices of those.
		panic(err)
	}

	return xxhash.Sum64(b)
}
