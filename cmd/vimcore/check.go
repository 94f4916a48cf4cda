package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/config/settings"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/vim"
)

func newCheckCmd(c *cli) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Load a configuration and report its options and mappings",
		Long: `Load a configuration file, apply it together with the environment
overrides and print every option it changes and every mapping it adds.

Examples:
  # Check the default configuration
  vimcore check

  # Check a specific file, listing all options
  vimcore check --all ./vimcore.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.v.Set("config", args[0])
			}

			ed, err := c.newVim()
			if ed == nil {
				return err
			}
			defer ed.Close()

			out := cmd.OutOrStdout()
			if err != nil {
				for _, e := range unjoin(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
				}
			}
			printOptions(out, ed, all)
			printMappings(out, ed)
			if err != nil {
				return errConfig
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every option, not only changed ones")
	return cmd
}

func printOptions(w io.Writer, ed *vim.Vim, all bool) {
	names := ed.Settings.Changed()
	if all {
		names = names[:0]
		for _, s := range settings.All() {
			names = append(names, s.Name)
		}
	}
	for _, name := range names {
		v, err := ed.Settings.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "set %s\n", formatOption(name, v))
	}
}

func formatOption(name string, v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return name
		}
		return "no" + name
	default:
		return fmt.Sprintf("%s=%v", name, v)
	}
}

func printMappings(w io.Writer, ed *vim.Vim) {
	for _, mode := range keymap.Modes() {
		for _, rule := range ed.Keymap.Rules(mode) {
			fmt.Fprintln(w, rule.String())
		}
	}
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, unjoin(e)...)
		}
		return errs
	}
	return []error{err}
}
