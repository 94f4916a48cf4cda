// Package vim assembles the editing state core.
//
// A Vim owns the instances shared by every document: the register store,
// the global settings, the key mapping resolver, the mark map and the change
// tracker. Each Buffer is one document together with its local settings;
// it routes edits through the change tracker and keeps the "." mark on the
// last edit. Nothing here is a process-wide singleton: every component is
// built by New and handed to the buffers that use it.
package vim
