// Package naming derives the identifiers used in generated code and
// suggests near matches for misspelled names.
//
// Key functions:
//   - LowerFirst / UpperFirst: first-rune case changes
//   - LowerInitial: lower-camel derivation that lowers a leading initialism
//   - Param / FieldParam: LowerFirst / LowerInitial plus escaping of Go
//     keywords and predeclared names
//   - Snake: file-name friendly snake_case from CamelCase identifiers
//   - Distance / Suggest: edit-distance based "did you mean" hints
package naming
