// Package gen renders union models into Go source.
//
// Generation uses text/template + go/format. Every artifact is built whole in
// memory; nothing reaches the disk unless rendering and formatting both
// succeeded.
//
// Emitted per union U with cases C1..Cn, in case declaration order:
//   - IsC(u U) bool, AsC(u U) option.Option[C], NewC(fields...) C
//   - MatchU, SwitchU and MapU: exhaustive, panicking on unknown cases
//   - UTap and TapU: optional per-case side effects
//   - UToResult for error unions, plus the adapter artifact bridging
//     result.Result[T, U] (MatchUResult, SwitchUResult, MapUResult,
//     URecovery and RecoverUResult)
package gen
