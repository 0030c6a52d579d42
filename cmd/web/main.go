package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/parts-atlas/pkg/server"
	"github.com/de-tools/parts-atlas/pkg/services/config"
	"github.com/de-tools/parts-atlas/pkg/services/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Parts Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (ATLAS_* environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loader, closer, err := config.OpenLoader(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
	}
	defer closer.Close()

	engine := config.NewEngine(loader, cfg.Inventory)
	assembler := report.NewAssembler(loader, engine)

	logger.Info().
		Str("source", cfg.Source.Kind).
		Str("inventory", cfg.Inventory.Mode).
		Msg("dataset source opened")

	webAPI := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analytics: engine,
			Reports:   assembler,
			Renderers: export.NewRenderer,
			Logger:    logger,
		},
	})

	return webAPI.Start()
}
