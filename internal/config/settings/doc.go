// Package settings implements the two-level option cascade.
//
// A Global holds the value of every option for the whole process. Each
// document gets a Local bound to the Global; a Local stores only the options
// overridden for that document and answers every other lookup from the
// Global. Options form a closed set declared in this package, each with a
// type, a default and a scope. Options with global scope cannot be
// overridden locally.
//
// Option names may be given in full or abbreviated the way Vim abbreviates
// them ("sw" for "shiftwidth"). Apply parses ":set" style assignments such
// as "sw=4", "noic", "invhls" and "ts&".
package settings
