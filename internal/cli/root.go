package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// ContainerFactory builds the application for a command
type ContainerFactory func(ctx context.Context, cfg *config.Config, log coreport.Logger) (*bootstrap.Container, error)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Env       string
	ConfigDir string
	Format    string
	LogLevel  string

	// NewContainer defaults to bootstrap.New
	NewContainer ContainerFactory
}

// NewRootCommand creates the root command for txctl
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		NewContainer: func(ctx context.Context, cfg *config.Config, log coreport.Logger) (*bootstrap.Container, error) {
			return bootstrap.New(ctx, cfg, log)
		},
	}

	cmd := &cobra.Command{
		Use:   "txctl",
		Short: "Operate the transaction processor",
		Long: `Operate the transaction processor: run the API or a standalone worker,
inspect and requeue transactions, and repair stuck ones.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", "", "configuration environment (defaults to TP_ENV or development)")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory holding <env>.yaml (defaults to ./configs)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override logger.level")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewRequeueCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// loadConfig resolves the configuration named by the global flags
func (o *RootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case o.Env == "" && o.ConfigDir == "":
		cfg, err = config.LoadConfig()
	default:
		env := o.Env
		if env == "" {
			env = config.Development
		}
		paths := config.ConfigPaths
		if o.ConfigDir != "" {
			paths = []string{o.ConfigDir}
		}
		cfg, err = config.Load(env, paths...)
	}
	if err != nil {
		return nil, err
	}

	if o.LogLevel != "" {
		cfg.Logger.Level = o.LogLevel
	}
	return cfg, nil
}

// open loads the configuration, applies adjust and builds the container.
// The caller closes the container.
func (o *RootOptions) open(ctx context.Context, adjust func(*config.Config)) (*bootstrap.Container, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := bootstrap.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}

	for _, warning := range cfg.Warnings() {
		log.Warn("Configuration warning", map[string]any{"warning": warning})
	}

	return o.NewContainer(ctx, cfg, log)
}

// closeContainer releases c and reports a failure only when the command itself succeeded
func closeContainer(c *bootstrap.Container, err *error) {
	if closeErr := c.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}
