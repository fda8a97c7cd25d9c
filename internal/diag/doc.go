// Package diag defines the diagnostic model produced by the checker.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Kind – the tagged issue class (ExtraClose, UnclosedOpen,
//     MissingContractBrace, MissingImportSemicolon, MissingFuncParen) with a
//     stable code (TB0001...) and a fixed message.
//   - Line – 1-based line of the issue. For UnclosedOpen it is the line the
//     brace was opened on.
//   - Column – 1-based rune column, used only by previews.
//
// The canonical rendering is "[TURBALANCE] Line <n>: <message>" (see
// Diagnostic.String). Renderers in internal/diagfmt must never reorder
// diagnostics: detection order is part of the contract, so Bag offers no
// Sort.
//
// # Emitting diagnostics
//
// Producers write through a Reporter. BagReporter stores into a capped Bag,
// SliceReporter into a plain slice.
//
// Package diag does not perform any formatting or IO.
package diag
