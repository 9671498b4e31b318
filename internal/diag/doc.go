// Package diag defines the diagnostic model shared by the scoring, ranking and
// clustering stages.
//
// # Purpose
//
//   - Give scorers a way to surface degenerate inputs (an empty inventory, an
//     unknown language, a symbol without distinctive features) without turning
//     them into errors that would abort a batch.
//   - Keep producers decoupled from storage and rendering: producers talk to a
//     Reporter, the CLI collects into a Bag and renders it.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Subject – what the finding is about: a language code, a pair "a/b",
//     a phoneme symbol or a corpus name.
//   - Message – short human text.
//
// Package diag performs no IO and no formatting beyond Code.String.
package diag
