package gen

import (
	"sort"

	"union-generator/internal/model"
)

// fileData holds everything the templates read.
type fileData struct {
	Tool     string
	BuildTag string
	Package  string
	Imports  []string

	Union     string
	Qualified string // package-qualified union name used in panics

	Factories bool
	Downcasts bool
	Option    string // local name of the option package
	Result    string // local name of the result package, "" when absent

	Match, Switch, Map, Tap, TapType, ToResult                string
	MatchResult, SwitchResult, MapResult, RecoverResult, Recovery string

	Cases []caseData

	// Ret is the handler result type of the "handlers" template.
	Ret string
}

type caseData struct {
	model.Case
	Is, As, New string
}

// With returns a copy of d whose handlers return ret.
func (d fileData) With(ret string) fileData {
	d.Ret = ret
	return d
}

func newFileData(u *model.Union, buildTag string) fileData {
	d := fileData{
		Tool:      Tool,
		BuildTag:  buildTag,
		Package:   u.PackageName,
		Union:     u.Name,
		Qualified: u.PackageName + "." + u.Name,
		Factories: u.EmitFactories,
		Downcasts: u.EmitSafeDowncasts,
		Option:    u.Option.Name,

		Match:    model.MatchName(u.Name),
		Switch:   model.SwitchName(u.Name),
		Map:      model.MapName(u.Name),
		Tap:      model.TapName(u.Name),
		TapType:  model.TapTypeName(u.Name),
		ToResult: model.ToResultName(u.Name),

		MatchResult:   model.MatchResultName(u.Name),
		SwitchResult:  model.SwitchResultName(u.Name),
		MapResult:     model.MapResultName(u.Name),
		RecoverResult: model.RecoverResultName(u.Name),
		Recovery:      model.RecoveryTypeName(u.Name),
	}

	if u.Flavor == model.FlavorErrorUnion && u.Result.Available() {
		d.Result = u.Result.Name
	}

	for _, c := range u.Cases {
		d.Cases = append(d.Cases, caseData{
			Case: c,
			Is:   model.IsName(c.Name),
			As:   model.AsName(c.Name),
			New:  model.NewName(c.Name),
		})
	}

	return d
}

// unionImports lists the non-standard imports of the main artifact: field
// packages when factories are emitted, and the option and result packages
// when used. fmt is always imported by the template.
func unionImports(u *model.Union, d fileData) []string {
	byPath := make(map[string]model.Import)

	for _, imp := range u.Imports {
		byPath[imp.Path] = imp
	}

	if d.Downcasts {
		byPath[u.Option.Path] = u.Option
	}

	if d.Result != "" {
		byPath[u.Result.Path] = u.Result
	}

	return specs(byPath)
}

func specs(byPath map[string]model.Import) []string {
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, byPath[p].Spec())
	}

	return out
}
