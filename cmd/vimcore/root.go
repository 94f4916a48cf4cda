package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/config/loader"
	"github.com/dshills/vimcore/internal/log"
	"github.com/dshills/vimcore/internal/vim"
	"github.com/dshills/vimcore/internal/vim/register"
)

// cli carries the state shared by every subcommand.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger

	// environ is swapped in tests.
	environ func() []string
}

func newRootCmd(version string) *cobra.Command {
	return newCLI(os.Environ).command(version)
}

func newCLI(environ func() []string) *cli {
	return &cli{
		v:       viper.New(),
		logger:  zap.NewNop(),
		environ: environ,
	}
}

func (c *cli) command(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "vimcore",
		Short: "Inspect vimcore configuration, key mappings and expressions",
		Long: `vimcore loads an editor configuration the way the editor does and
lets you check it, resolve keys through its mappings and evaluate
expression register input against it.

The configuration path comes from --config, then $VIMCORE_CONFIG, then
<user config dir>/vimcore/config.toml. Options can be overridden with
VIMCORE_OPT_<NAME> environment variables.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.init,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (TOML or YAML)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("log-dev", false, "human readable log output")
	flags.Bool("system-clipboard", false, "back the * and + registers with the system clipboard")

	c.v.SetEnvPrefix("VIMCORE")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	for _, name := range []string{"config", "log-level", "log-dev", "system-clipboard"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newCheckCmd(c),
		newResolveCmd(c),
		newEvalCmd(c),
		newWatchCmd(c),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command, _ []string) error {
	logger, err := log.New(c.v.GetString("log-level"), c.v.GetBool("log-dev"))
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// configPath returns the configuration file to use. An empty result means
// there is none.
func (c *cli) configPath() string {
	if path := c.v.GetString("config"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vimcore", "config.toml")
}

// newVim creates the editor state and applies the configuration file and
// the environment overrides to it. Apply errors are returned together with
// the state so callers can report them and carry on.
func (c *cli) newVim() (*vim.Vim, error) {
	opts := []vim.Option{vim.WithLogger(c.logger)}
	if c.v.GetBool("system-clipboard") {
		opts = append(opts, vim.WithClipboard(register.OSClipboard{}))
	}
	ed := vim.New(opts...)

	f, err := c.loadConfig()
	if err != nil {
		ed.Close()
		return nil, err
	}
	return ed, errors.Join(ed.LoadConfig(f), ed.LoadConfig(c.env()))
}

// loadConfig reads the configuration file. It returns nil when there is
// none.
func (c *cli) loadConfig() (*loader.File, error) {
	path := c.configPath()
	if path == "" {
		return nil, nil
	}
	f, err := loader.New().Load(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.Bool("found", f != nil))
	return f, nil
}

// env returns the VIMCORE_OPT_ overrides, applied after the file.
func (c *cli) env() *loader.File {
	return loader.NewEnvLoaderWithEnviron(loader.DefaultEnvPrefix, c.environ).Load()
}

// errConfig reports that the configuration had errors that were already
// printed.
var errConfig = errors.New("configuration has errors")
