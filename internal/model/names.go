package model

// Generated identifier names. Renderers and the collision check share them
// so a name is spelled in exactly one place.

// Tool is the generator name written into every artifact header.
const Tool = "union-generator"

// Header is the first line of every artifact.
const Header = "// Code generated by " + Tool + ". DO NOT EDIT."

// IsName is the case-test predicate of a case.
func IsName(caseName string) string { return "Is" + caseName }

// AsName is the safe downcast of a case.
func AsName(caseName string) string { return "As" + caseName }

// NewName is the factory of a case. The prefix keeps it apart from the case
// type, which already owns the bare name.
func NewName(caseName string) string { return "New" + caseName }

// MatchName is the exhaustive match of a union.
func MatchName(union string) string { return "Match" + union }

// SwitchName is the side-effecting exhaustive match of a union.
func SwitchName(union string) string { return "Switch" + union }

// MapName is the case-wise transform of a union.
func MapName(union string) string { return "Map" + union }

// TapName is the optional per-case side effect of a union.
func TapName(union string) string { return "Tap" + union }

// TapTypeName is the handler set accepted by TapName.
func TapTypeName(union string) string { return union + "Tap" }

// ToResultName wraps an error union as a failed result.
func ToResultName(union string) string { return union + "ToResult" }

// MatchResultName is the exhaustive match over a result failing with union.
func MatchResultName(union string) string { return "Match" + union + "Result" }

// SwitchResultName is the side-effecting sibling of MatchResultName.
func SwitchResultName(union string) string { return "Switch" + union + "Result" }

// MapResultName re-maps the failure of a result case-wise.
func MapResultName(union string) string { return "Map" + union + "Result" }

// RecoverResultName converts selected failures into new outcomes.
func RecoverResultName(union string) string { return "Recover" + union + "Result" }

// RecoveryTypeName is the handler set accepted by RecoverResultName.
func RecoveryTypeName(union string) string { return union + "Recovery" }

// TypeParams are the type parameter names of generated generic functions.
// A case type spelled the same would be shadowed inside them.
var TypeParams = []string{"R", "T", "E2"}

// Identifiers lists every package-level identifier the renderers may declare
// for a union with the given flavor, flags and case names.
func Identifiers(union string, flavor Flavor, factories, downcasts, adapters bool, caseNames []string) []string {
	var ids []string

	for _, c := range caseNames {
		ids = append(ids, IsName(c))

		if downcasts {
			ids = append(ids, AsName(c))
		}

		if factories {
			ids = append(ids, NewName(c))
		}
	}

	ids = append(ids,
		MatchName(union), SwitchName(union), MapName(union),
		TapName(union), TapTypeName(union),
	)

	if flavor == FlavorErrorUnion {
		ids = append(ids, ToResultName(union))

		if adapters {
			ids = append(ids,
				MatchResultName(union), SwitchResultName(union), MapResultName(union),
				RecoverResultName(union), RecoveryTypeName(union),
			)
		}
	}

	return ids
}
