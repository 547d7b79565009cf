// Package marker parses the //uniongen: directives that designate union
// roots and configure their generation.
//
// A root is marked in its doc comment:
//
//	//uniongen:union factories=true downcasts=false
//	type Shape interface{ isShape() }
//
//	//uniongen:errorunion adapters=true
//	type UserError interface{ isUserError() }
//
// A case may override its name:
//
//	//uniongen:case name=Disk
//	type DiskShape struct{ R float64 }
package marker

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"union-generator/internal/model"
	"union-generator/internal/naming"
)

// Prefix starts every directive understood by this package.
const Prefix = "//uniongen:"

// Directive verbs.
const (
	verbUnion      = "union"
	verbErrorUnion = "errorunion"
	verbCase       = "case"
)

// Option keys.
const (
	OptFactories = "factories"
	OptDowncasts = "downcasts"
	OptAdapters  = "adapters"
	optName      = "name"
)

// Flavor distinguishes plain unions from error unions. Its String form is
// the directive verb.
type Flavor = model.Flavor

const (
	FlavorUnion      = model.FlavorUnion
	FlavorErrorUnion = model.FlavorErrorUnion
)

// Marker is a parsed root directive with its resolved configuration.
type Marker struct {
	Flavor    Flavor
	Factories bool
	Downcasts bool
	Adapters  bool
	// Problems lists unknown or malformed options. The affected options keep
	// their defaults.
	Problems []Problem
	// Pos is the position of the directive comment.
	Pos token.Pos
}

// Problem describes an option that could not be applied.
type Problem struct {
	Message     string
	Suggestions []string
}

// Defaults returns the configuration used when no option is given.
func Defaults(flavor Flavor) Marker {
	return Marker{
		Flavor:    flavor,
		Factories: true,
		Downcasts: true,
		Adapters:  flavor == FlavorErrorUnion,
	}
}

// knownOptions lists the options accepted per flavor.
func knownOptions(flavor Flavor) []string {
	if flavor == FlavorErrorUnion {
		return []string{OptFactories, OptAdapters}
	}

	return []string{OptFactories, OptDowncasts}
}

// Find returns the first root directive found in the given comment groups.
// Nil groups are skipped.
func Find(groups ...*ast.CommentGroup) (Marker, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if m, ok := Parse(c.Text); ok {
				m.Pos = c.Slash
				return m, true
			}
		}
	}

	return Marker{}, false
}

// Parse parses a single comment line. It returns false if the line is not a
// root directive.
func Parse(line string) (Marker, bool) {
	verb, args, ok := split(line)
	if !ok {
		return Marker{}, false
	}

	var m Marker

	switch verb {
	case verbUnion:
		m = Defaults(FlavorUnion)
	case verbErrorUnion:
		m = Defaults(FlavorErrorUnion)
	default:
		return Marker{}, false
	}

	known := knownOptions(m.Flavor)

	for _, arg := range args {
		key, raw, hasValue := strings.Cut(arg, "=")

		value := true
		if hasValue {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				m.Problems = append(m.Problems, Problem{
					Message: fmt.Sprintf("option %s has invalid value %q (want true or false)", key, raw),
				})

				continue
			}

			value = b
		}

		switch {
		case key == OptFactories:
			m.Factories = value
		case key == OptDowncasts && m.Flavor == FlavorUnion:
			m.Downcasts = value
		case key == OptAdapters && m.Flavor == FlavorErrorUnion:
			m.Adapters = value
		default:
			m.Problems = append(m.Problems, Problem{
				Message:     fmt.Sprintf("unknown option %q for %s", key, m.Flavor),
				Suggestions: naming.Suggest(key, known, 3),
			})
		}
	}

	return m, true
}

// CaseName returns the name override of a case directive, if any.
func CaseName(groups ...*ast.CommentGroup) (string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			verb, args, ok := split(c.Text)
			if !ok || verb != verbCase {
				continue
			}

			for _, arg := range args {
				if key, value, _ := strings.Cut(arg, "="); key == optName && token.IsIdentifier(value) {
					return value, true
				}
			}
		}
	}

	return "", false
}

// split breaks a directive line into its verb and arguments.
func split(line string) (string, []string, bool) {
	rest, ok := strings.CutPrefix(line, Prefix)
	if !ok {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil, false
	}

	return fields[0], fields[1:], true
}
