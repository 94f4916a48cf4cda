// Package register implements Vim's registers: the unnamed register, a-z
// with their appending A-Z siblings, 0-9 and eleven special registers, 74
// names in all.
//
// A Store never reports a register as missing. Content is only replaced by
// an explicit write or Clear. The * and + registers can be backed by a
// ClipboardProvider; OSClipboard uses the system clipboard.
package register
