package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_Shape(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

type Rectangle struct {
	Width, Height float64
	_             int
}

func (Rectangle) isShape() {}

// Ring only inherits the marker method.
type Ring struct{ Circle }

type Disk struct{ R float64 }

func (*Disk) isShape() {}
`)

	assert.Equal(t, "Shape", r.Name)
	assert.Equal(t, fixturePath+".Shape", r.QualifiedName)
	assert.Equal(t, "fixture", r.PkgName)
	assert.Equal(t, "/fixture", r.Dir)
	assert.Equal(t, "interface", r.Kind)
	assert.True(t, r.IsAbstractRoot)
	assert.True(t, r.IsSealed)
	assert.True(t, r.IsExtensible)
	assert.False(t, r.IsGeneric)
	assert.False(t, r.HasInstanceFields)
	assert.Equal(t, "isShape", r.MarkerMethod)
	assert.Equal(t, 4, r.Location.Line)

	require.Equal(t, []string{"Circle", "Rectangle", "Disk"}, caseNames(r))
	assert.False(t, r.IsValueSemanticKind, "Disk uses a pointer receiver")

	circle := r.Cases[0]
	assert.True(t, circle.IsClosedForInheritance)
	assert.False(t, circle.Pointer)
	require.Len(t, circle.Fields, 1)
	assert.Equal(t, "Radius", circle.Fields[0].Name)
	assert.Equal(t, "float64", circle.Fields[0].Type.String())

	rect := r.Cases[1]
	require.Len(t, rect.Fields, 2, "blank fields are skipped")
	assert.Equal(t, "Width", rect.Fields[0].Name)
	assert.Equal(t, "Height", rect.Fields[1].Name)

	assert.True(t, r.Cases[2].Pointer)
	assert.Empty(t, r.Collisions)
}

func TestInspect_ValueSemantic(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Token interface{ isToken() }

type Word string

func (Word) isToken() {}

type Number struct{ V int }

func (Number) isToken() {}
`)

	assert.True(t, r.IsValueSemanticKind)

	require.Len(t, r.Cases, 2)
	word := r.Cases[0]
	assert.True(t, word.Conversion)
	require.Len(t, word.Fields, 1)
	assert.Equal(t, "value", word.Fields[0].Name)
	assert.Equal(t, "string", word.Fields[0].Type.String())
}

func TestInspect_NoCases(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Empty interface{ isEmpty() }
`)

	assert.True(t, r.IsSealed)
	assert.Empty(t, r.Cases)
	assert.True(t, r.IsValueSemanticKind)
}

func TestInspect_StructRoot(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Shape struct{ Name string }
`)

	assert.False(t, r.IsAbstractRoot)
	assert.Equal(t, "struct", r.Kind)
	assert.True(t, r.HasInstanceFields)
	assert.Equal(t, "1 field(s)", r.InstanceState)
	assert.Empty(t, r.Cases)
}

func TestInspect_Unsealed(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Shape interface{ Area() float64 }
`)

	assert.True(t, r.IsAbstractRoot)
	assert.False(t, r.IsSealed)
	assert.True(t, r.HasInstanceFields)
	assert.Equal(t, "method Area", r.InstanceState)
}

func TestInspect_ExtraMethods(t *testing.T) {
	r := inspectOnly(t, `package fixture

import "fmt"

//uniongen:union
type Shape interface {
	isShape()
	fmt.Stringer
	Area() float64
}
`)

	assert.True(t, r.IsSealed)
	assert.Equal(t, "embedded fmt.Stringer, method Area", r.InstanceState)
}

func TestInspect_ErrorUnionEmbedsError(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:errorunion
type UserError interface {
	error
	isUserError()
}

type NotFound struct{ ID string }

func (NotFound) isUserError() {}
func (NotFound) Error() string { return "not found" }

// Quiet has the marker but no Error method, so it is not a UserError.
type Quiet struct{}

func (Quiet) isUserError() {}
`)

	assert.False(t, r.HasInstanceFields)
	assert.Equal(t, []string{"NotFound"}, caseNames(r))
}

func TestInspect_NotExtensible(t *testing.T) {
	pkg := loadSource(t, `package fixture

func build() {
	//uniongen:union
	type Local interface{ isLocal() }
	_ = Local(nil)
}

type Target interface{ isTarget() }

//uniongen:union
type Alias = Target
`)

	s := NewScanner(pkg)
	decls := s.Scan()
	require.Len(t, decls, 2)

	local := s.Inspect(decls[0])
	assert.False(t, local.IsExtensible)
	assert.Equal(t, "it is declared inside a function", local.ExtensibleReason)

	alias := s.Inspect(decls[1])
	assert.False(t, alias.IsExtensible)
	assert.Equal(t, "it is a type alias", alias.ExtensibleReason)
	assert.True(t, alias.IsSealed, "sealing method found through the aliased type")
}

func TestInspect_Generic(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Box[T any] interface{ isBox() }
`)

	assert.True(t, r.IsGeneric)
	assert.Empty(t, r.Cases)
}

func TestInspect_CaseKinds(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union
type Shape interface{ isShape() }

type Circle struct{ R float64 }

func (Circle) isShape() {}

//uniongen:case name=Circle
type Round struct{ R float64 }

func (Round) isShape() {}

// Blob can be implemented by other types.
type Blob interface{ isShape() }

type Box[T any] struct{ V T }

func (Box[T]) isShape() {}
`)

	require.Equal(t, []string{"Circle", "Circle", "Blob", "Box"}, caseNames(r))

	round := r.Cases[1]
	assert.Equal(t, "Round", round.TypeName)
	assert.True(t, round.IsDuplicate)
	assert.Equal(t, "Circle", round.FirstTypeName)

	blob := r.Cases[2]
	assert.False(t, blob.IsClosedForInheritance)
	assert.Empty(t, blob.Fields)

	assert.True(t, r.Cases[3].IsGeneric)

	live := r.Live()
	require.Len(t, live, 2)
	assert.Equal(t, "Circle", live[0].TypeName)
	assert.Equal(t, "Blob", live[1].TypeName)
}

func TestInspect_Collisions(t *testing.T) {
	r := inspectOnly(t, `package fixture

//uniongen:union factories=false
type Shape interface{ isShape() }

type Circle struct{ R float64 }

func (Circle) isShape() {}

func IsCircle(s Shape) bool { return false }

// NewCircle is fine: factories are off.
func NewCircle() Circle { return Circle{} }

type ShapeTap struct{}
`)

	require.Len(t, r.Collisions, 2)
	assert.Equal(t, "IsCircle", r.Collisions[0].Ident)
	assert.Equal(t, 10, r.Collisions[0].Pos.Line)
	assert.Equal(t, "ShapeTap", r.Collisions[1].Ident)
}

func TestInspect_CollisionsIgnorePreviousArtifacts(t *testing.T) {
	pkg := loadFiles(t, map[string]string{
		"shape.go": `package fixture

//uniongen:union
type Shape interface{ isShape() }

type Circle struct{ R float64 }

func (Circle) isShape() {}

func MatchShape(s Shape) int { return 0 }
`,
		"shape_union.gen.go": `// Code generated by union-generator. DO NOT EDIT.

//go:build !uniongen

package fixture

func IsCircle(s Shape) bool {
	_, ok := s.(Circle)
	return ok
}

func NewCircle(r float64) Shape { return Circle{R: r} }

type ShapeTap struct{ OnCircle func(Circle) }
`,
	})

	s := NewScanner(pkg)
	decls := s.Scan()
	require.Len(t, decls, 1)

	r := s.Inspect(decls[0])
	assert.Equal(t, []string{"Circle"}, caseNames(r))
	require.Len(t, r.Collisions, 1, "only the hand-written declaration collides")
	assert.Equal(t, "MatchShape", r.Collisions[0].Ident)
	assert.Equal(t, "/fixture/shape.go", r.Collisions[0].Pos.Filename)
}
