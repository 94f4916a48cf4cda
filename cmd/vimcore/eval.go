package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newEvalCmd(c *cli) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an expression register input",
		Long: `Evaluate an expression the way the = register does. Expressions are
Lua; reg(c) reads a register and opt(name) reads an option.

Examples:
  vimcore eval '1 + 2'
  vimcore eval 'opt("shiftwidth") * 2'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := c.newVim()
			if ed == nil {
				return err
			}
			defer ed.Close()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := ed.EvaluateExpression(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Second, "evaluation time limit")
	return cmd
}
