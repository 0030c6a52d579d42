package commands

import (
	"fmt"
	"path/filepath"

	"github.com/de-tools/parts-atlas/pkg/models/store"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/parts-atlas/pkg/services/config"
	"github.com/de-tools/parts-atlas/pkg/services/importer"
	"github.com/de-tools/parts-atlas/pkg/store/duckdb"
	duckdbdataset "github.com/de-tools/parts-atlas/pkg/store/duckdb/dataset"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	open   Opener
	target string
}

func NewImportCmd(open Opener) *cobra.Command {
	ic := &ImportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy every dataset table from the configured source into a DuckDB file",
		RunE:  ic.run,
	}
	cmd.Flags().StringVar(&ic.target, "db", "parts-atlas.db", "DuckDB file to import into")
	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, err := ic.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	src := session.Config.Source
	if (src.Kind == config.SourceDuckDB || src.Kind == "") && filepath.Clean(src.DbPath) == filepath.Clean(ic.target) {
		return fmt.Errorf("import source and target are the same database: %s", ic.target)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.target})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	target, err := duckdbdataset.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create dataset store: %w", err)
	}

	summary, err := importer.NewImporter(db, target).Import(ctx, session.Loader)
	if err != nil {
		return err
	}
	return export.NewConsole(cmd.OutOrStdout()).ImportSummary(store.Tables, summary)
}
