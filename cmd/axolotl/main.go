package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aexol-studio/axolotl-sub001/internal/config"
	"github.com/aexol-studio/axolotl-sub001/internal/eventbus"
	"github.com/aexol-studio/axolotl-sub001/internal/logging"
	"github.com/aexol-studio/axolotl-sub001/internal/otel"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if cerr := a.close(context.Background()); err == nil {
		err = cerr
	}
	return err
}

// app holds what every command needs once configuration is loaded.
// close releases it after the command ran, whether or not it failed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
	shutdown   func(context.Context) error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:          "axolotl",
		Short:        "Compose GraphQL schemas and generate resolver models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "config file (default ./axolotl.yaml)")
	pf.String("log.level", "", "log level: debug, info, warn or error")
	pf.Bool("log.development", false, "human-readable console logs")
	pf.String("otel.endpoint", "", "OTLP collector endpoint")
	pf.String("otel.service", "", "OpenTelemetry service name")

	root.AddCommand(newComposeCmd(a), newModelsCmd(a))
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	eventbus.Use(bus)
	detach := logging.Attach(bus, logger)
	stopTracing, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service)
	if err != nil {
		detach()
		return fmt.Errorf("otel setup: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.shutdown = func(ctx context.Context) error {
		defer detach()
		return stopTracing(ctx)
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	err := a.shutdown(ctx)
	a.shutdown = nil
	_ = a.logger.Sync()
	eventbus.Use(nil)
	return err
}

// output opens path for writing; "-" and "" mean the command's stdout.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
