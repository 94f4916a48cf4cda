// Package key provides key event types and the Vim key notation used to
// write mappings.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Shift, Alt and Meta as a bitmask
//   - Event: a single key press
//   - Sequence: an ordered series of events
//
// # Notation
//
// A sequence is written as plain characters mixed with bracketed key
// names: "jj", "<Esc>", "<C-w>j", "<Space>f", "<lt>leader>". A bracketed
// form that does not name a key is taken literally, as Vim does.
//
// Shift on a letter folds into the letter itself: <S-a> is "A". Ctrl on a
// letter is case-insensitive: <C-A> and <C-a> are the same event.
package key
