package commands

import (
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type DemandCmd struct {
	open      Opener
	timeFrame string
}

func NewDemandCmd(open Opener) *cobra.Command {
	dc := &DemandCmd{open: open}
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Show the highest forecast demand parts for a time frame",
		RunE:  dc.run,
	}
	cmd.Flags().StringVar(&dc.timeFrame, "time-frame", string(domain.TimeFrame6Months),
		"Forecast horizon: 7days, 1month, 3months or 6months")
	return cmd
}

func (dc *DemandCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tf, err := domain.ParseTimeFrame(dc.timeFrame)
	if err != nil {
		return err
	}

	session, err := dc.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	demand, err := session.Engine.Demand(ctx, tf)
	if err != nil {
		return fmt.Errorf("failed to compute forecast demand: %w", err)
	}
	return export.NewConsole(cmd.OutOrStdout()).Demand(demand)
}
