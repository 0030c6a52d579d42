package commands

import (
	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type scopeFlags struct {
	state  int
	county int
}

func (f *scopeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.state, "state", 0, "State region id to scope to")
	cmd.Flags().IntVar(&f.county, "county", 0, "County region id to scope to (wins over --state)")
}

// scope only sets the ids whose flags were given, so 0 stays a valid id.
func (f *scopeFlags) scope(cmd *cobra.Command) domain.RegionScope {
	var scope domain.RegionScope
	if cmd.Flags().Changed("state") {
		state := f.state
		scope.StateID = &state
	}
	if cmd.Flags().Changed("county") {
		county := f.county
		scope.CountyID = &county
	}
	return scope
}

type frameFlags struct {
	scopeFlags
	timeFrame string
}

func (f *frameFlags) bind(cmd *cobra.Command) {
	f.scopeFlags.bind(cmd)
	cmd.Flags().StringVar(&f.timeFrame, "time-frame", string(domain.TimeFrame6Months),
		"Forecast horizon: 7days, 1month, 3months or 6months")
}
