// Package validate explains, through diagnostics, every way a marked root
// falls short of the union contract.
//
// Check accepts any Report, including ones for declarations that are not
// interfaces at all, so that a skipped union always comes with a reason.
package validate

import (
	"strings"

	"union-generator/internal/analyze"
	"union-generator/internal/diagnostic"
)

// Check reports root rules first, then case rules in case declaration order.
// The result depends only on r.
func Check(r *analyze.Report) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, p := range r.Marker.Problems {
		d := diags.Report(diagnostic.InvalidMarkerOption, r.Location, r.Name, "", r.Name, p.Message)
		d.Suggestions = p.Suggestions
	}

	if !r.IsAbstractRoot {
		diags.Report(diagnostic.RootNotAbstract, r.Location, r.Name, "", r.Name, r.Kind)
	} else if !r.IsSealed {
		diags.Report(diagnostic.RootNotSealed, r.Location, r.Name, "", r.Name)
	}

	if !r.IsExtensible {
		diags.Report(diagnostic.RootNotExtensible, r.Location, r.Name, "", r.Name, r.ExtensibleReason)
	}

	if r.IsGeneric {
		diags.Report(diagnostic.RootGeneric, r.Location, r.Name, "", r.Name)
	}

	if r.HasInstanceFields {
		diags.Report(diagnostic.RootHasInstanceState, r.Location, r.Name, "", r.Name, r.InstanceState)
	}

	if r.IsAbstractRoot && r.IsSealed && !r.IsGeneric && len(r.Live()) == 0 {
		diags.Report(diagnostic.NoCases, r.Location, r.Name, "", r.Name, r.MarkerMethod)
	}

	if pointers := pointerCases(r); len(pointers) > 0 {
		diags.Report(diagnostic.PreferValueSemantics, r.Location, r.Name, "", r.Name, strings.Join(pointers, ", "))
	}

	for _, c := range r.Collisions {
		diags.Report(diagnostic.IdentifierCollision, c.Pos, r.Name, "", c.Ident, r.Name, c.Pos.String())
	}

	for _, c := range r.Cases {
		checkCase(&diags, r, c)
	}

	return diags
}

func checkCase(diags *diagnostic.Diagnostics, r *analyze.Report, c analyze.CaseReport) {
	if c.IsDuplicate {
		diags.Report(diagnostic.DuplicateCaseName, c.Location, r.Name, c.Name, c.Name, r.Name, c.FirstTypeName)
		return
	}

	if c.IsGeneric {
		diags.Report(diagnostic.GenericCaseSkipped, c.Location, r.Name, c.Name, c.TypeName, r.Name)
		return
	}

	if !c.IsClosedForInheritance {
		diags.Report(diagnostic.CaseNotClosed, c.Location, r.Name, c.Name, c.TypeName, r.Name)
	}
}

// pointerCases names the live cases whose marker has a pointer receiver.
func pointerCases(r *analyze.Report) []string {
	var names []string

	for _, c := range r.Live() {
		if c.Pointer {
			names = append(names, c.TypeName)
		}
	}

	return names
}

// Blocked reports whether diags contain a rule that prevents generation.
func Blocked(diags diagnostic.Diagnostics) bool {
	return len(diags.Blocking()) > 0
}
