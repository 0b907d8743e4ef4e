package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
)

type app struct {
	configPath string
	verbose    bool
}

func (a *app) load() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cmd *cobra.Command) zerolog.Logger {
	l := logger.New(cmd.ErrOrStderr(), "text")
	if !a.verbose {
		l = l.Level(zerolog.WarnLevel)
	}
	return l
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "qrframe",
		Short: "Render framed QR codes from the command line",
		Example: `  # Purple gradient frame
  qrframe render --data https://example.com --style gradient_purple -o code.png

  # Every style at once, written to ./out
  qrframe render --data "hello" --all -o out`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("QRFRAME_CONFIG"), "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log frame fallbacks and progress")

	rootCmd.AddCommand(newRenderCmd(a), newStylesCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
