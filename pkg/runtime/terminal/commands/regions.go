package commands

import (
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type RegionsCmd struct {
	open  Opener
	scope scopeFlags
}

func NewRegionsCmd(open Opener) *cobra.Command {
	rc := &RegionsCmd{open: open}
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List states and counties, optionally narrowed to a scope",
		RunE:  rc.run,
	}
	rc.scope.bind(cmd)
	return cmd
}

func (rc *RegionsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, err := rc.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	regions, err := session.Engine.Regions(ctx, rc.scope.scope(cmd))
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}
	return export.NewConsole(cmd.OutOrStdout()).Regions(regions)
}
