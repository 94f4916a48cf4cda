// Package keymap resolves key sequences through user-defined mappings, the
// way Vim's :map family rewrites typeahead before a command sees it.
//
// # Key Concepts
//
// Rule: maps a From sequence to a To sequence in one Mode. A recursive rule
// (:map) has its output scanned again for further mappings; a non-recursive
// rule (:noremap) emits its output verbatim.
//
// Resolver: holds the rules of every mode and rewrites input sequences.
//
// # Resolution
//
// Input is scanned left to right. At each position the longest From that
// prefixes the remaining keys wins. Keys with no match pass through. If a
// recursive rule's output starts with its own From, that leading part is
// not remapped, so "nmap j jzz" terminates.
//
// Expansions that follow each other without consuming an input key count
// towards a depth limit (Vim's 'maxmapdepth', default 1000). Exceeding it
// returns ErrMappingCycle along with the output produced before the
// offending key and the rest of the input unchanged.
//
// # Usage
//
//	r := keymap.NewResolver()
//	r.AddMapping(keymap.ModeInsert, "jj", "<Esc>", false)
//
//	out, err := r.ResolveString(keymap.ModeInsert, "hijj")
//	// out == "hi<Esc>"
//
//	// Wait for more keys when the input so far could still grow into a mapping
//	if r.IsPrefix(keymap.ModeInsert, key.MustParseSequence("j")) {
//	    // ...
//	}
package keymap
