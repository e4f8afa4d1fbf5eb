package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/config"
	"github.com/lixenwraith/walkbox/observability"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// loggerAnnotation selects the log sink for a subcommand
const (
	loggerAnnotation = "logger"
	loggerFileOnly   = "file"
)

// app carries state shared by subcommands
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "walkbox",
		Short:         "Point-and-click navigation over polygonal walkable regions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initializeConfig(); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if cmd.Annotations[loggerAnnotation] == loggerFileOnly {
				observability.InitializeFileOnly(cfg.Logger)
			} else {
				observability.InitializeLogger(cfg.Logger)
			}
			observability.GetLogger().Debug("Starting walkbox",
				zap.String("version", Version),
				zap.String("command", cmd.Name()),
				zap.String("config", a.v.ConfigFileUsed()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./walkbox.toml)")
	root.PersistentFlags().String("scene", "", "built-in scene name")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	a.bindFlag("scene.name", root.PersistentFlags().Lookup("scene"))
	a.bindFlag("logger.level", root.PersistentFlags().Lookup("log-level"))
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newPlayCmd(a),
		newServeCmd(a),
		newRouteCmd(a),
		newScenesCmd(a),
	)
	return root
}

// bindFlag lets an explicitly set flag override config and env for key
func (a *app) bindFlag(key string, f *pflag.Flag) {
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %q: %v", f.Name, err))
	}
}

// initializeConfig reads in config file and ENV variables if set
func (a *app) initializeConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName(config.FileName)
		a.v.SetConfigType("toml")
	}

	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
