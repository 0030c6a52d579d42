package commands

import (
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/parts-atlas/pkg/services/analytics"
	"github.com/spf13/cobra"
)

type RecommendCmd struct {
	open  Opener
	frame frameFlags
	limit int
}

func NewRecommendCmd(open Opener) *cobra.Command {
	rc := &RecommendCmd{open: open}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List restocking recommendations, most critical first",
		RunE:  rc.run,
	}
	rc.frame.bind(cmd)
	cmd.Flags().IntVar(&rc.limit, "limit", 20, "Maximum number of parts to show (0 shows all)")
	return cmd
}

func (rc *RecommendCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tf, err := domain.ParseTimeFrame(rc.frame.timeFrame)
	if err != nil {
		return err
	}
	if rc.limit < 0 {
		return fmt.Errorf("invalid limit %d", rc.limit)
	}

	session, err := rc.open(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	recs, err := session.Engine.Recommendations(ctx, tf, rc.frame.scope(cmd))
	if err != nil {
		return fmt.Errorf("failed to generate recommendations: %w", err)
	}
	if rc.limit > 0 && len(recs) > rc.limit {
		recs = recs[:rc.limit]
	}
	return export.NewConsole(cmd.OutOrStdout()).Restock(analytics.RestockLines(recs, tf))
}
