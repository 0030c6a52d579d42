package commands

import (
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type MetricsCmd struct {
	open  Opener
	frame frameFlags
}

func NewMetricsCmd(open Opener) *cobra.Command {
	mc := &MetricsCmd{open: open}
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show dashboard metrics for a region and time frame",
		RunE:  mc.run,
	}
	mc.frame.bind(cmd)
	return cmd
}

func (mc *MetricsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tf, err := domain.ParseTimeFrame(mc.frame.timeFrame)
	if err != nil {
		return err
	}

	session, err := mc.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	metrics, err := session.Engine.Metrics(ctx, tf, mc.frame.scope(cmd))
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}
	return export.NewConsole(cmd.OutOrStdout()).Metrics(metrics)
}
