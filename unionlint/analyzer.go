// Package unionlint reports union declarations that union-generator would
// reject or warn about, so editors and go vet surface them before a
// generation pass does.
package unionlint

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"union-generator/internal/analyze"
	"union-generator/internal/diagnostic"
	"union-generator/internal/validate"
)

const doc = `check union declarations marked for union-generator

Reports every diagnostic the generator would print for a //uniongen:union or
//uniongen:errorunion root: roots that are not sealed interfaces, duplicate
or open cases, identifier collisions and invalid marker options. Info
diagnostics are reported only with -info.`

// Analyzer checks the marked unions of a package.
var Analyzer = &analysis.Analyzer{
	Name: "unionlint",
	Doc:  doc,
	URL:  "https://pkg.go.dev/union-generator/unionlint",
	Run:  run,
}

var reportInfo bool

func init() {
	Analyzer.Flags.BoolVar(&reportInfo, "info", false, "also report info diagnostics")
}

func run(pass *analysis.Pass) (any, error) {
	s := analyze.NewScanner(packageOf(pass))

	for _, decl := range s.Scan() {
		diags := validate.Check(s.Inspect(decl))

		for _, d := range diags.Items {
			if d.Severity == diagnostic.SeverityInfo && !reportInfo {
				continue
			}

			pass.Report(analysis.Diagnostic{
				Pos:      posOf(pass, d.Pos, decl.Obj.Pos()),
				Category: d.Code,
				Message:  message(d),
			})
		}
	}

	return nil, nil
}

// packageOf presents the pass as a loaded package, which is all the
// scanner reads.
func packageOf(pass *analysis.Pass) *packages.Package {
	files := make([]string, 0, len(pass.Files))
	for _, f := range pass.Files {
		files = append(files, pass.Fset.File(f.Pos()).Name())
	}

	return &packages.Package{
		ID:        pass.Pkg.Path(),
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		GoFiles:   files,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		Types:     pass.Pkg,
		TypesInfo: pass.TypesInfo,
	}
}

// posOf maps a diagnostic position back into the pass's file set, falling
// back to the root declaration.
func posOf(pass *analysis.Pass, p token.Position, fallback token.Pos) token.Pos {
	if !p.IsValid() {
		return fallback
	}

	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf != nil && tf.Name() == p.Filename && p.Offset <= tf.Size() {
			return tf.Pos(p.Offset)
		}
	}

	return fallback
}

func message(d diagnostic.Diagnostic) string {
	msg := fmt.Sprintf("%s: %s", d.Code, d.Message)
	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return msg
}
