// Package ui implements the interactive playlist picker using bubbletea's Elm architecture.
//
// The picker is a single full-screen view: a cursor over a reorderable
// playlist list with checkbox markers for the multi-select set. Selection is
// tracked by playlist identity, so moving a playlist with +/- carries its
// marker along. Enter confirms and returns the chosen subset in final list
// order; confirming an empty selection is an error the caller treats as
// fatal.
//
// Keyboard bindings use charmbracelet/bubbles/key with vim-style movement
// (j/k) alongside the arrow keys.
package ui
