package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/parts-atlas/pkg/models/domain"
	"github.com/de-tools/parts-atlas/pkg/services/config"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected domain.RegionScope
	}{
		{name: "no flags", args: []string{}, expected: domain.RegionScope{}},
		{name: "state zero is an id", args: []string{"--state", "0"}, expected: domain.RegionScope{StateID: ptr(0)}},
		{name: "county", args: []string{"--county", "12"}, expected: domain.RegionScope{CountyID: ptr(12)}},
		{
			name:     "both",
			args:     []string{"--state", "1", "--county", "12"},
			expected: domain.RegionScope{StateID: ptr(1), CountyID: ptr(12)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var flags scopeFlags
			var got domain.RegionScope
			cmd := &cobra.Command{
				Use: "test",
				RunE: func(cmd *cobra.Command, _ []string) error {
					got = flags.scope(cmd)
					return nil
				},
			}
			flags.bind(cmd)
			cmd.SetArgs(tc.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tc.expected, got)
		})
	}
}

func ptr(v int) *int { return &v }

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestSession(t *testing.T) {
	closer := &closeRecorder{}
	cfg := &config.Config{Inventory: config.Inventory{Mode: config.InventoryForecast, Seed: 1}}

	session := NewSession(cfg, &dataset.Snapshot{}, closer)

	require.NotNil(t, session.Engine)
	require.NoError(t, session.Close())
	assert.True(t, closer.closed)
	assert.NoError(t, NewSession(cfg, &dataset.Snapshot{}, nil).Close())
}

func TestConfigOpener_InvalidConfig(t *testing.T) {
	path := "/nonexistent/atlas.yaml"

	_, err := ConfigOpener(&path)(context.Background())

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrDataUnavailable))
}
