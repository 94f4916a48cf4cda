// Package loader reads settings and key mappings from configuration files.
//
// A file is TOML or YAML, chosen by extension, and has three optional parts:
//
//	set = ["sw=4 et", "noic"]       # ":set" command lines
//
//	[settings]                      # option values by name
//	shiftwidth = 4
//
//	[[map]]                         # key mappings
//	mode = "insert"
//	from = "jj"
//	to = "<Esc>"
//	noremap = true
//
// Apply installs a loaded File into global settings and a key resolver.
// Watcher reloads a file when it changes on disk.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format is a configuration file syntax.
type Format uint8

const (
	// FormatTOML is TOML, the default.
	FormatTOML Format = iota
	// FormatYAML is YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf returns the format for path's extension. Unknown extensions
// are read as TOML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Mapping is one key mapping entry.
type Mapping struct {
	Mode    string `toml:"mode" yaml:"mode"`
	From    string `toml:"from" yaml:"from"`
	To      string `toml:"to" yaml:"to"`
	Noremap bool   `toml:"noremap" yaml:"noremap"`
}

// File is the decoded content of a configuration file.
type File struct {
	// Path is where the file was read from, empty for parsed data.
	Path string `toml:"-" yaml:"-"`

	// Set holds ":set" command lines applied after Settings.
	Set []string `toml:"set" yaml:"set"`

	// Settings maps option names to values.
	Settings map[string]any `toml:"settings" yaml:"settings"`

	// Maps are the key mappings in file order.
	Maps []Mapping `toml:"map" yaml:"map"`
}

// IsEmpty reports whether the file configures nothing.
func (f *File) IsEmpty() bool {
	return f == nil || (len(f.Set) == 0 && len(f.Settings) == 0 && len(f.Maps) == 0)
}

// Loader reads configuration files.
type Loader struct {
	fs FileSystem
}

// New creates a loader over the OS file system.
func New() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewWithFS creates a loader with a custom file system.
func NewWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and decodes the file at path. A missing file yields nil, nil.
func (l *Loader) Load(path string) (*File, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	f, err := Parse(FormatOf(path), path, data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse decodes data in the given format. source names the data in errors.
func Parse(format Format, source string, data []byte) (*File, error) {
	switch format {
	case FormatYAML:
		return parseYAML(source, data)
	default:
		return parseTOML(source, data)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
