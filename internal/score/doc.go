// Package score implements the interchangeable similarity strategies used to
// compare two phoneme inventories.
//
// Every strategy returns a scalar where higher means more similar. F1 and the
// distinctive-feature score return EmptySentinel (-1) when either inventory is
// empty and report a diagnostic; they never divide by zero.
package score
