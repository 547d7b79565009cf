package naming

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LowerFirst lowers the first rune of s and leaves the rest untouched.
// Empty strings are returned unchanged.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}

	return string(lower) + s[size:]
}

// UpperFirst raises the first rune of s and leaves the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerInitial lowers the leading initialism of s the way Go spells local
// names: "ID" -> "id", "URLPath" -> "urlPath", "Radius" -> "radius".
func LowerInitial(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// Param returns the handler parameter identifier for a case name: LowerFirst,
// with a "_" suffix when the result is a Go keyword or shadows a predeclared
// identifier.
func Param(name string) string {
	return escape(LowerFirst(name))
}

// FieldParam returns the factory parameter identifier for a field name:
// LowerInitial, escaped like Param.
func FieldParam(name string) string {
	return escape(LowerInitial(name))
}

func escape(p string) string {
	if p == "" {
		return p
	}

	if token.IsKeyword(p) || types.Universe.Lookup(p) != nil {
		return p + "_"
	}

	return p
}

// Snake converts a CamelCase identifier to snake_case.
// Examples:
//   - "Shape" -> "shape"
//   - "UserError" -> "user_error"
//   - "HTTPFailure" -> "http_failure"
func Snake(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), "_"))
}

// Tokenize splits a CamelCase or camelCase identifier into its words.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "user_error" -> ["user", "error"]
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// startsWord reports whether runes[i] begins a new word.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	// lower -> Upper: "orderID" splits before 'I'
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// end of acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
