package gen

import "text/template"

var templates = template.Must(template.New("gen").Parse(`
{{- define "header" -}}
// Code generated by {{.Tool}}. DO NOT EDIT.

//go:build !{{.BuildTag}}

package {{.Package}}
{{end}}

{{- define "handlers" -}}
{{range .Cases}}, {{.ParameterName}} func({{.Ref}}) {{$.Ret}}{{end}}
{{- end}}

{{- define "union" -}}
{{template "header" .}}
import (
	"fmt"
{{- if .Imports}}
{{range .Imports}}
	{{.}}
{{- end}}
{{- end}}
)
{{range .Cases}}
// {{.Is}} reports whether u holds a {{.Ref}}.
func {{.Is}}(u {{$.Union}}) bool {
	_, ok := u.({{.Ref}})
	return ok
}
{{if $.Downcasts}}
// {{.As}} returns the {{.Ref}} held by u, or None if u holds another case.
func {{.As}}(u {{$.Union}}) {{$.Option}}.Option[{{.Ref}}] {
	if v, ok := u.({{.Ref}}); ok {
		return {{$.Option}}.Some(v)
	}

	return {{$.Option}}.None[{{.Ref}}]()
}
{{end}}
{{- if and $.Factories .Factory}}
// {{.New}} returns a new {{.TypeName}}.
func {{.New}}({{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.ParameterName}} {{$f.ShortTypeName}}{{end}}) {{.Ref}} {
{{- if .Conversion}}
{{- if .Pointer}}
	v := {{.TypeName}}({{(index .Fields 0).ParameterName}})
	return &v
{{- else}}
	return {{.TypeName}}({{(index .Fields 0).ParameterName}})
{{- end}}
{{- else}}
	return {{if .Pointer}}&{{end}}{{.TypeName}}{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Name}}: {{$f.ParameterName}}{{end -}} }
{{- end}}
}
{{end}}
{{- end}}
// {{.Match}} calls the handler for the case held by u and returns its result.
// It panics if u holds a case unknown to this file.
func {{.Match}}[R any](u {{.Union}}{{template "handlers" .With "R"}}) R {
	switch v := u.(type) {
{{- range .Cases}}
	case {{.Ref}}:
		return {{.ParameterName}}(v)
{{- end}}
	default:
		panic(fmt.Errorf("{{.Qualified}}: unhandled case %T", u))
	}
}

// {{.Switch}} calls the handler for the case held by u.
// It panics if u holds a case unknown to this file.
func {{.Switch}}(u {{.Union}}{{range .Cases}}, {{.ParameterName}} func({{.Ref}}){{end}}) {
	switch v := u.(type) {
{{- range .Cases}}
	case {{.Ref}}:
		{{.ParameterName}}(v)
{{- end}}
	default:
		panic(fmt.Errorf("{{.Qualified}}: unhandled case %T", u))
	}
}

// {{.Map}} replaces u with the result of the handler for the case it holds.
// It panics if u holds a case unknown to this file.
func {{.Map}}(u {{.Union}}{{template "handlers" .With .Union}}) {{.Union}} {
	return {{.Match}}(u{{range .Cases}}, {{.ParameterName}}{{end}})
}

// {{.TapType}} holds optional side effects for {{.Tap}}. Nil handlers are skipped.
type {{.TapType}} struct {
{{- range .Cases}}
	{{.Name}} func({{.Ref}})
{{- end}}
}

// {{.Tap}} runs the handler of h for the case held by u, if any, and returns
// u unchanged.
func {{.Tap}}(u {{.Union}}, h {{.TapType}}) {{.Union}} {
	switch v := u.(type) {
{{- range .Cases}}
	case {{.Ref}}:
		if h.{{.Name}} != nil {
			h.{{.Name}}(v)
		}
{{- end}}
	}

	return u
}
{{- if .Result}}

// {{.ToResult}} returns e as the failure of a result.
func {{.ToResult}}[T any](e {{.Union}}) {{.Result}}.Result[T, {{.Union}}] {
	return {{.Result}}.Fail[T, {{.Union}}](e)
}
{{- end}}
{{end}}

{{- define "adapters" -}}
{{template "header" .}}
import {{index .Imports 0}}

// {{.MatchResult}} calls ok with the value of a successful r, or the handler
// for the case r failed with.
// It panics if r failed with a case unknown to this file.
func {{.MatchResult}}[T, R any](r {{.Result}}.Result[T, {{.Union}}], ok func(T) R{{template "handlers" .With "R"}}) R {
	if v, success := r.Value(); success {
		return ok(v)
	}

	e, _ := r.Err()

	return {{.Match}}(e{{range .Cases}}, {{.ParameterName}}{{end}})
}

// {{.SwitchResult}} calls ok with the value of a successful r, or the handler
// for the case r failed with.
// It panics if r failed with a case unknown to this file.
func {{.SwitchResult}}[T any](r {{.Result}}.Result[T, {{.Union}}], ok func(T){{range .Cases}}, {{.ParameterName}} func({{.Ref}}){{end}}) {
	if v, success := r.Value(); success {
		ok(v)
		return
	}

	e, _ := r.Err()
	{{.Switch}}(e{{range .Cases}}, {{.ParameterName}}{{end}})
}

// {{.MapResult}} keeps the value of a successful r and maps a failure case-wise
// to a new error.
// It panics if r failed with a case unknown to this file.
func {{.MapResult}}[T, E2 any](r {{.Result}}.Result[T, {{.Union}}]{{template "handlers" .With "E2"}}) {{.Result}}.Result[T, E2] {
	if v, success := r.Value(); success {
		return {{.Result}}.Ok[T, E2](v)
	}

	e, _ := r.Err()

	return {{.Result}}.Fail[T]({{.Match}}(e{{range .Cases}}, {{.ParameterName}}{{end}}))
}

// {{.Recovery}} holds optional recovery handlers for {{.RecoverResult}}.
type {{.Recovery}}[T any] struct {
{{- range .Cases}}
	{{.Name}} func({{.Ref}}) {{$.Result}}.Result[T, {{$.Union}}]
{{- end}}
}

// {{.RecoverResult}} replaces a failed r with the outcome of the handler for
// its case. Successes, and failures without a handler, are returned unchanged.
func {{.RecoverResult}}[T any](r {{.Result}}.Result[T, {{.Union}}], h {{.Recovery}}[T]) {{.Result}}.Result[T, {{.Union}}] {
	e, failed := r.Err()
	if !failed {
		return r
	}

	switch v := e.(type) {
{{- range .Cases}}
	case {{.Ref}}:
		if h.{{.Name}} != nil {
			return h.{{.Name}}(v)
		}
{{- end}}
	}

	return r
}
{{end}}
`))
