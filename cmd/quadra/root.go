// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/quadra/config"
	"github.com/katalvlaran/quadra/integrand"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	out, errOut io.Writer

	v          *viper.Viper
	configFile string
	cfg        config.Config
	logger     *slog.Logger
	reg        *integrand.Registry
}

func newRootCommand(a *app) *cobra.Command {
	a.v = viper.New()
	a.reg = integrand.Default()

	cmd := &cobra.Command{
		Use:           "quadra",
		Short:         "Adaptive numerical integration by step doubling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			lvl, _ := cfg.Level() // validated by Load
			a.cfg = cfg
			a.logger = newLogger(a.errOut, lvl)
			a.logger.Debug("quadra: config loaded", "command", cmd.Name(), "file", a.configFile)

			return nil
		},
	}

	d := config.Default()
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "configuration file (yaml, json or toml)")
	flags.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	flags.StringP("output", "o", d.Output, "output format: text, json or yaml")
	bindFlags(a.v, flags, map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyOutput:   "output",
	})

	cmd.AddCommand(
		newRunCommand(a),
		newListCommand(a),
	)

	return cmd
}

// bindFlags binds config keys to flag names; an unchanged flag leaves the
// key to env, file and defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
