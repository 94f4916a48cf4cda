package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/config/loader"
)

func newWatchCmd(c *cli) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the configuration whenever it changes",
		Long: `Watch the configuration file and apply it again on every change,
printing the changed options after each reload. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.configPath()
			if path == "" {
				return errors.New("no configuration file to watch")
			}

			ed, err := c.newVim()
			if ed == nil {
				return err
			}
			defer ed.Close()

			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			printOptions(out, ed, false)

			w := loader.NewWatcher(path, func(f *loader.File, err error) {
				if err == nil {
					err = errors.Join(ed.ReloadConfig(f), ed.LoadConfig(c.env()))
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					return
				}
				fmt.Fprintf(out, "reloaded %s\n", path)
				printOptions(out, ed, false)
			}, loader.WithDebounce(debounce), loader.WithLogger(c.logger))

			if err := w.Start(cmd.Context()); err != nil {
				return err
			}
			c.logger.Info("watching configuration", zap.String("path", path))
			<-w.Done()
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "wait this long after a change before reloading")
	return cmd
}
