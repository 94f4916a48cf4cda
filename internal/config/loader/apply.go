package loader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/vimcore/internal/config/settings"
	"github.com/dshills/vimcore/internal/input/keymap"
)

// Apply installs f into global settings and resolver. Settings are applied
// first in name order, then the ":set" lines, then the mappings in file
// order. Every entry is attempted; the errors of the failing ones are
// joined. Either target may be nil to skip its part.
func Apply(f *File, global *settings.Global, resolver *keymap.Resolver) error {
	if f == nil {
		return nil
	}

	var errs []error
	if global != nil {
		names := make([]string, 0, len(f.Settings))
		for name := range f.Settings {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := global.Set(name, f.Settings[name]); err != nil {
				errs = append(errs, fmt.Errorf("%s: settings: %w", f.source(), err))
			}
		}
		for i, line := range f.Set {
			if err := settings.ApplyLine(global, line); err != nil {
				errs = append(errs, fmt.Errorf("%s: set[%d]: %w", f.source(), i, err))
			}
		}
	}

	if resolver != nil {
		for i, m := range f.Maps {
			if err := applyMapping(resolver, m); err != nil {
				errs = append(errs, fmt.Errorf("%s: map[%d]: %w", f.source(), i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Replace resets every option and clears every mapping before applying f,
// so that entries removed from a reloaded file stop taking effect.
func Replace(f *File, global *settings.Global, resolver *keymap.Resolver) error {
	if global != nil {
		for _, s := range settings.All() {
			if err := global.Reset(s.Name); err != nil {
				return err
			}
		}
	}
	if resolver != nil {
		for _, mode := range keymap.Modes() {
			resolver.Clear(mode)
		}
	}
	return Apply(f, global, resolver)
}

func applyMapping(resolver *keymap.Resolver, m Mapping) error {
	mode := keymap.ModeNormal
	if m.Mode != "" {
		var err error
		if mode, err = keymap.ParseMode(m.Mode); err != nil {
			return err
		}
	}
	return resolver.AddMapping(mode, m.From, m.To, !m.Noremap)
}

func (f *File) source() string {
	if f.Path == "" {
		return "<config>"
	}
	return f.Path
}
