package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/input/keymap"
)

func newResolveCmd(c *cli) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "resolve <keys>...",
		Short: "Run keys through the configured mappings",
		Long: `Resolve keys in Vim key notation through the mappings of a mode and
print the keys they expand to. Several arguments are joined.

Examples:
  vimcore resolve jj --mode insert
  vimcore resolve '<Leader>w'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := keymap.ParseMode(mode)
			if err != nil {
				return err
			}

			ed, err := c.newVim()
			if ed == nil {
				return err
			}
			defer ed.Close()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			out, err := ed.Keymap.ResolveString(m, strings.Join(args, ""))
			if err != nil && !errors.Is(err, keymap.ErrMappingCycle) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "normal", "mode whose mappings apply (normal, insert, visual, ... or n, i, x, ...)")
	return cmd
}
