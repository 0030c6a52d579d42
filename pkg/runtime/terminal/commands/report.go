package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/parts-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	open      Opener
	scope     scopeFlags
	format    string
	outputDir string
	stdout    bool
}

func NewReportCmd(open Opener) *cobra.Command {
	rc := &ReportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the stocking report across all time frames",
		RunE:  rc.run,
	}
	rc.scope.bind(cmd)
	cmd.Flags().StringVar(&rc.format, "format", "", "Output format: text, yaml or json (defaults to report.format)")
	cmd.Flags().StringVarP(&rc.outputDir, "output", "o", "", "Directory to write the report to (defaults to report.output_dir)")
	cmd.Flags().BoolVar(&rc.stdout, "stdout", false, "Print the report instead of writing a file")
	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, err := rc.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	format := rc.format
	if format == "" {
		format = session.Config.Report.Format
	}
	renderer, err := export.NewRenderer(format)
	if err != nil {
		return err
	}

	assembler := report.NewAssembler(session.Loader, session.Engine)
	artifact, err := assembler.GenerateReport(ctx, rc.scope.scope(cmd), renderer)
	if err != nil {
		return err
	}

	if rc.stdout {
		_, err := cmd.OutOrStdout().Write(artifact.Data)
		return err
	}

	dir := rc.outputDir
	if dir == "" {
		dir = session.Config.Report.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
