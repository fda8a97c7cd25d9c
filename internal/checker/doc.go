// Package checker implements the TurboSwift structural balance checker.
//
// Check makes a single forward pass over the source lines and then drains the
// brace tracker. Per-line findings come out in scan order; every
// UnclosedOpen diagnostic comes after them, most recently opened first.
// Nothing is sorted by line number.
//
// The scan is character level: braces inside string literals or comments are
// counted like any other brace. Keyword tests are plain prefix and substring
// checks unless Options.WordBoundary is set.
package checker
