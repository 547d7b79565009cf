// Package analyze loads Go packages and inspects union roots.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find the
// type declarations carrying a //uniongen: directive and to describe each of
// them in a single Report. The Report is the only view of a declaration the
// rest of the generator sees: the validator turns it into diagnostics and the
// extractor turns it into a model.
//
// Key types:
//   - TypeID: package import path + type name
//   - Declaration: a marked type declaration found by Scan
//   - Report: everything Inspect learned about one root and its cases
package analyze
