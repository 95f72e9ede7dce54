package ioformat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

func TestConfigurationRoundTrip(t *testing.T) {
	cases := []core.Configuration{
		core.GridCell{X: 3, Y: -2},
		core.PointGraphConfiguration{ID: 7, X: 1.5, Y: 2.5},
		core.SE2{X: 1, Y: 2, Yaw: 0.5},
	}
	for _, c := range cases {
		doc := ConfigurationToDoc(c)
		got, err := doc.ToConfiguration()
		require.NoError(t, err)
		require.Equal(t, c.Key(), got.Key())
	}
}

func TestConfigurationToDocDefaultsToGrid(t *testing.T) {
	doc := ConfigurationDoc{}
	cfg, err := doc.ToConfiguration()
	require.NoError(t, err)
	require.IsType(t, core.GridCell{}, cfg)
}

func TestConfigurationUnknownKind(t *testing.T) {
	doc := ConfigurationDoc{Kind: "warp"}
	_, err := doc.ToConfiguration()
	require.Error(t, err)
}
