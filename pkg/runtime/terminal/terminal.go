package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/commands"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	configPath string
	open       commands.Opener
	logger     zerolog.Logger
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger zerolog.Logger
	// Open overrides how commands reach the dataset. Defaults to the --config file.
	Open commands.Opener
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{logger: opts.Logger}
	cli.open = opts.Open
	if cli.open == nil {
		cli.open = commands.ConfigOpener(&cli.configPath)
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs replaces the arguments parsed from os.Args.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "parts-atlas",
		Short:         "Regional parts demand and stocking analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "",
		"Path to the config file (ATLAS_* environment variables override it)")

	cmd.AddCommand(commands.NewRegionsCmd(cli.open))
	cmd.AddCommand(commands.NewMetricsCmd(cli.open))
	cmd.AddCommand(commands.NewDemandCmd(cli.open))
	cmd.AddCommand(commands.NewRecommendCmd(cli.open))
	cmd.AddCommand(commands.NewReportCmd(cli.open))
	cmd.AddCommand(commands.NewImportCmd(cli.open))

	return cmd
}
