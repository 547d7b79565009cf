// Package model defines the structural union model consumed by the
// renderers.
//
// A Union is built fresh from a declaration snapshot on every pass and never
// mutated afterwards. Cases keep declaration order; that order drives the
// order of everything rendered from the model.
package model
